package styles

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral stands in for palette entries that are ANSI codes, not hex.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}

// ramp returns n colours from a to b, blended in HCL space. A single
// colour is just a.
func ramp(n int, a, b colorful.Color) []colorful.Color {
	out := make([]colorful.Color, n)
	for i := range out {
		if n == 1 {
			out[i] = a
			continue
		}
		out[i] = a.BlendHcl(b, float64(i)/float64(n-1)).Clamped()
	}
	return out
}

// paint renders every grapheme of text in its own step of the ramp.
func paint(text string, from, to colorful.Color) string {
	var graphemes []string
	for g := uniseg.NewGraphemes(text); g.Next(); {
		graphemes = append(graphemes, g.Str())
	}
	if len(graphemes) == 0 {
		return ""
	}

	var b strings.Builder
	for i, c := range ramp(len(graphemes), from, to) {
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Hex())).
			Render(graphemes[i]))
	}
	return b.String()
}

// Brand renders text bold in the primary to secondary gradient.
func Brand(text string) string {
	return paint(text, toColorful(T().Primary), toColorful(T().Secondary))
}

// Pulse is Brand with a start colour that swings between the deep
// background and the primary colour as phase (radians) advances.
func Pulse(text string, phase float64) string {
	w := (math.Sin(phase) + 1) / 2
	start := toColorful(T().Deep).BlendRgb(toColorful(T().Primary), w)
	return paint(text, start, toColorful(T().Secondary))
}
