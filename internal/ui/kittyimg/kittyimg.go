// Package kittyimg draws thumbnails with the Kitty terminal graphics
// protocol.
package kittyimg

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

const (
	chunkSize = 4096 // max base64 bytes per escape sequence

	escStart = "\x1b_G"
	escEnd   = "\x1b\\"

	// EnvOverride forces detection: "kitty" or "none".
	EnvOverride = "HIFI_IMAGE_PROTOCOL"
)

// Supported reports whether the terminal understands the Kitty graphics
// protocol.
func Supported() bool {
	return supported(os.Getenv)
}

func supported(getenv func(string) string) bool {
	switch getenv(EnvOverride) {
	case "kitty":
		return true
	case "none":
		return false
	}
	// Contour inherits parent terminal variables but lacks the protocol.
	if getenv("CONTOUR_PROFILE") != "" {
		return false
	}
	switch {
	case getenv("KITTY_WINDOW_ID") != "",
		getenv("GHOSTTY_RESOURCES_DIR") != "",
		getenv("TERM_PROGRAM") == "WezTerm":
		return true
	}
	return strings.Contains(getenv("TERM"), "kitty")
}

// EncodePNG returns the escape sequence that transmits and displays PNG data
// in a cols x rows cell box. id lets a later Delete remove the image.
// Returns "" for empty data.
func EncodePNG(data []byte, id uint32, cols, rows int) string {
	if len(data) == 0 || cols <= 0 || rows <= 0 {
		return ""
	}
	b64 := base64.StdEncoding.EncodeToString(data)

	var sb strings.Builder
	for i := 0; i < len(b64); i += chunkSize {
		end := min(i+chunkSize, len(b64))
		more := 0
		if end < len(b64) {
			more = 1
		}
		sb.WriteString(escStart)
		if i == 0 {
			// a=T transmit and display, f=100 PNG, q=2 no replies, C=1 keep cursor
			fmt.Fprintf(&sb, "a=T,f=100,q=2,C=1,i=%d,c=%d,r=%d,m=%d;", id, cols, rows, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(b64[i:end])
		sb.WriteString(escEnd)
	}
	return sb.String()
}

// Delete returns the sequence that removes image id from the screen.
func Delete(id uint32) string {
	return fmt.Sprintf("%sa=d,d=I,i=%d,q=2%s", escStart, id, escEnd)
}

// Placeholder returns a boxed music note for missing thumbnails.
func Placeholder(cols, rows int) string {
	if cols < 4 || rows < 2 {
		return ""
	}

	lines := make([]string, 0, rows)
	lines = append(lines, "┌"+strings.Repeat("─", cols-2)+"┐")
	for i := 1; i < rows-1; i++ {
		if i == rows/2 && cols >= 5 {
			padding := (cols - 3) / 2
			lines = append(lines, "│"+strings.Repeat(" ", padding)+"♪"+strings.Repeat(" ", cols-3-padding)+"│")
		} else {
			lines = append(lines, "│"+strings.Repeat(" ", cols-2)+"│")
		}
	}
	lines = append(lines, "└"+strings.Repeat("─", cols-2)+"┘")
	return strings.Join(lines, "\n")
}
