// Package jobbar lists running background tasks above the player bar.
package jobbar

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/ui/render"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

// BorderHeight is the height of borders around the job bar.
const BorderHeight = 2

// MaxJobs caps the number of lines shown; the rest are summarized.
const MaxJobs = 3

// Job is a single running task.
type Job struct {
	Label   string
	Started time.Time
}

// FromHandles converts running task handles, oldest first.
func FromHandles(handles []*task.Handle) []Job {
	jobs := make([]Job, 0, len(handles))
	for _, h := range handles {
		label := h.Label()
		if label == "" {
			label = h.Name()
		}
		jobs = append(jobs, Job{Label: label, Started: h.Started()})
	}
	return jobs
}

// Height returns the rows the bar occupies for n jobs, 0 when none.
func Height(n int) int {
	if n == 0 {
		return 0
	}
	return lines(n) + BorderHeight
}

func lines(n int) int {
	if n > MaxJobs {
		return MaxJobs + 1
	}
	return n
}

func labelStyle() lipgloss.Style   { return styles.T().S().Base }
func elapsedStyle() lipgloss.Style { return styles.T().S().Muted }
func spinnerStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(styles.T().Primary) }

// Render draws jobs with the current spinner frame. Returns "" when there
// are no jobs.
func Render(jobs []Job, spinner string, now time.Time, width int) string {
	if len(jobs) == 0 {
		return ""
	}
	inner := max(width-2, 0)

	out := make([]string, 0, lines(len(jobs)))
	for i, j := range jobs {
		if i == MaxJobs {
			out = append(out, elapsedStyle().Render(render.Truncate(
				"  + "+strconv.Itoa(len(jobs)-MaxJobs)+" more", inner)))
			break
		}
		elapsed := elapsedStyle().Render(render.Duration(now.Sub(j.Started)))
		left := spinnerStyle().Render(spinner) + " " + labelStyle().Render(render.Sanitize(j.Label))
		left = render.TruncateStyled(left, max(inner-lipgloss.Width(elapsed)-1, 1))
		out = append(out, render.Row(left, elapsed, inner))
	}

	return styles.PanelStyle(false).Width(inner).Render(strings.Join(out, "\n"))
}
