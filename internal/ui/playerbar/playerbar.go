// Package playerbar renders the player bar at the bottom of the window.
package playerbar

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/ui/render"
)

// State holds everything needed to render the player bar.
type State struct {
	Phase    playback.Phase
	Title    string
	Artist   string
	Position time.Duration
	Duration time.Duration
	Mode     playback.DisplayMode
	Message  string
	Dragging bool

	// Expanded mode
	Spinner   string // current spinner frame while loading
	Thumbnail []byte // PNG, nil shows the placeholder
	ImageID   uint32
	Kitty     bool
	Frame     float64 // gradient animation phase
}

// FromPlayback copies the controller snapshot.
func FromPlayback(s playback.State) State {
	st := State{
		Phase:    s.Phase,
		Position: s.Position,
		Duration: s.Duration,
		Mode:     s.Mode,
		Message:  s.Message,
		Dragging: s.Dragging,
	}
	if s.Track != nil {
		st.Title = s.Track.Title
		st.Artist = s.Track.Artist
	}
	return st
}

// Height returns the rows the bar occupies, 0 when hidden.
func Height(s State) int {
	if s.Phase == playback.PhaseIdle {
		return 0
	}
	if s.Mode == playback.DisplayExpanded {
		return expandedRows + 2
	}
	return 3
}

// Render returns the bar for the given width, or "" when idle.
func Render(s State, width int) string {
	if s.Phase == playback.PhaseIdle {
		return ""
	}
	if s.Mode == playback.DisplayExpanded && width-2 >= minExpandedWidth {
		return renderExpanded(s, width)
	}
	return renderCompact(s, width)
}

func status(s State) string {
	switch s.Phase {
	case playback.PhaseLoading:
		if s.Spinner != "" {
			return statusStyle().Render(s.Spinner)
		}
		return statusStyle().Render("…")
	case playback.PhasePlaying:
		return statusStyle().Render(playSymbol)
	case playback.PhasePaused:
		return statusStyle().Render(pauseSymbol)
	case playback.PhaseError:
		return errorStyle().Render(errorSymbol)
	}
	return ""
}

func title(s State) string {
	if s.Title == "" {
		return "Unknown Track"
	}
	return s.Title
}

// compactSep separates the title, the progress bar and the time label.
const compactSep = "   "

// compactLeft is the left border plus padding of the compact bar.
const compactLeft = 3

type compactLayout struct {
	left, right string
	inner       int
	barWidth    int // 0 when the bar is not drawn
}

func layoutCompact(s State, width int) compactLayout {
	inner := max(width-6, 0) // border + padding

	left := status(s) + "  " + titleStyle().Render(render.Sanitize(title(s)))
	if s.Artist != "" {
		left += artistStyle().Render(" · " + render.Sanitize(s.Artist))
	}

	var right string
	switch s.Phase {
	case playback.PhaseError:
		right = errorStyle().Render(s.Message)
	case playback.PhaseLoading:
		right = timeStyle().Render("Loading...")
	default:
		right = timeStyle().Render(TimeLabel(s.Position, s.Duration))
	}

	// Title gets at most half the line; the bar takes what is left.
	left = render.TruncateStyled(left, max(inner/2, 10))

	l := compactLayout{left: left, right: right, inner: inner}
	barWidth := inner - lipgloss.Width(left) - lipgloss.Width(right) - 2*len(compactSep)
	if s.Phase.IsActive() && barWidth >= 5 {
		l.barWidth = barWidth
	}
	return l
}

func renderCompact(s State, width int) string {
	l := layoutCompact(s, width)

	var line string
	if l.barWidth > 0 {
		line = l.left + compactSep + ProgressBar(s.Position, s.Duration, l.barWidth, s.Dragging) + compactSep + l.right
	} else {
		line = render.Row(l.left, l.right, l.inner)
	}

	return barStyle().Padding(0, 2).Width(max(width-2, 0)).Render(render.TruncateStyled(line, l.inner))
}

// ProgressBounds returns the first column and width of the progress bar on
// the bar's content row, which is the row below its top border. ok is false
// when no bar is drawn or the expanded layout is shown.
func ProgressBounds(s State, width int) (start, barWidth int, ok bool) {
	if s.Phase == playback.PhaseIdle {
		return 0, 0, false
	}
	if s.Mode == playback.DisplayExpanded && width-2 >= minExpandedWidth {
		return 0, 0, false
	}
	l := layoutCompact(s, width)
	if l.barWidth == 0 {
		return 0, 0, false
	}
	return compactLeft + lipgloss.Width(l.left) + len(compactSep), l.barWidth, true
}
