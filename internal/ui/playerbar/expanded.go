package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/ui/kittyimg"
	"github.com/llehouerou/hifi/internal/ui/render"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

const (
	artCols          = 20
	expandedRows     = 10
	minExpandedWidth = 44
)

func renderExpanded(s State, width int) string {
	inner := max(width-2, 0)
	metaWidth := inner - artCols - 4 // art, gap and padding

	heading := render.Sanitize(title(s))
	if s.Phase == playback.PhasePlaying {
		heading = styles.Pulse(heading, s.Frame)
	} else {
		heading = styles.Brand(heading)
	}

	artist := s.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}

	meta := []string{
		"",
		render.TruncateStyled(heading, metaWidth),
		artistStyle().Render(render.Truncate(artist, metaWidth)),
		"",
		"",
	}
	switch s.Phase {
	case playback.PhaseError:
		meta = append(meta, errorStyle().Render(s.Message), "")
	case playback.PhaseLoading:
		meta = append(meta, status(s)+" "+timeStyle().Render("Loading..."), "")
	default:
		glyph := status(s)
		label := TimeLabel(s.Position, s.Duration)
		barWidth := metaWidth - lipgloss.Width(glyph) - lipgloss.Width(label) - 4
		bar := ProgressBar(s.Position, s.Duration, max(barWidth, 3), s.Dragging)
		meta = append(meta, glyph+"  "+bar+"  "+timeStyle().Render(label), "")
	}
	meta = append(meta, styles.T().S().Subtle.Render(hint(s)))

	content := make([]string, expandedRows)
	placeholder := strings.Split(kittyimg.Placeholder(artCols, expandedRows), "\n")
	for i := range expandedRows {
		art := strings.Repeat(" ", artCols)
		if !s.Kitty || len(s.Thumbnail) == 0 {
			art = placeholder[i]
		}
		line := ""
		if i < len(meta) {
			line = meta[i]
		}
		content[i] = art + "  " + render.FitStyled(line, metaWidth)
	}

	rendered := barStyle().Padding(0, 1).Width(inner).Render(strings.Join(content, "\n"))
	if s.Kitty && len(s.Thumbnail) > 0 {
		return injectImage(rendered, kittyimg.EncodePNG(s.Thumbnail, s.ImageID, artCols, expandedRows))
	}
	return rendered
}

func hint(s State) string {
	if s.Dragging {
		return "shift+←/→ scrub · enter release"
	}
	return "space play/pause · ←/→ seek · v compact · x close"
}

// injectImage places the image sequence after the left border and padding of
// the first content line so the image's top-left cell is the art box.
func injectImage(rendered, seq string) string {
	lines := strings.SplitN(rendered, "\n", 3)
	if len(lines) < 3 || seq == "" {
		return rendered
	}
	line := lines[1]
	border := strings.Index(line, "│")
	if border < 0 {
		return rendered
	}
	pad := strings.IndexByte(line[border:], ' ')
	if pad < 0 {
		return rendered
	}
	at := border + pad + 1
	lines[1] = line[:at] + seq + line[at:]
	return strings.Join(lines, "\n")
}
