package playerbar

import (
	"strings"
	"time"

	"github.com/llehouerou/hifi/internal/ui/render"
)

// TimeLabel renders "position / duration". An unknown duration renders as
// 0:00.
func TimeLabel(position, duration time.Duration) string {
	return render.Duration(position) + " / " + render.Duration(duration)
}

// ProgressBar renders a width-cell bar. While scrubbing the handle marks
// the dragged position.
func ProgressBar(position, duration time.Duration, width int, dragging bool) string {
	if width <= 0 {
		return ""
	}
	var ratio float64
	if duration > 0 {
		ratio = min(max(float64(position)/float64(duration), 0), 1)
	}
	filled := min(int(float64(width)*ratio), width)

	if dragging {
		handle := min(filled, width-1)
		return filledStyle().Render(strings.Repeat(filledSegment, handle)) +
			statusStyle().Render(scrubHandle) +
			emptyStyle().Render(strings.Repeat(emptySegment, width-handle-1))
	}
	return filledStyle().Render(strings.Repeat(filledSegment, filled)) +
		emptyStyle().Render(strings.Repeat(emptySegment, width-filled))
}

// PositionAt maps a column of a width-cell bar back to a position.
func PositionAt(col, width int, duration time.Duration) time.Duration {
	if width <= 0 || duration <= 0 {
		return 0
	}
	col = min(max(col, 0), width)
	return time.Duration(float64(duration) * float64(col) / float64(width))
}
