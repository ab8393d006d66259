package sidebar

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifi/internal/ui/render"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

// Width is the fixed sidebar width, border included.
const Width = 22

func activeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(styles.T().FgBase).
		Background(styles.T().Primary).
		Bold(true)
}

func inactiveStyle() lipgloss.Style { return styles.T().S().Muted }

func sectionStyle() lipgloss.Style { return styles.T().S().Accent }

func keyStyle() lipgloss.Style { return styles.T().S().Subtle }

// Render draws the sidebar for the active tab at the given height.
func Render(active Tab, height int) string {
	inner := Width - 2

	lines := []string{
		"",
		render.Center(styles.Brand("HiFi"), inner),
		"",
	}
	for _, sec := range sections {
		lines = append(lines, " "+sectionStyle().Render(sec.title))
		for _, t := range sec.tabs {
			lines = append(lines, item(t, t == active, inner))
		}
		lines = append(lines, "")
	}

	body := render.Block(strings.Join(lines, "\n"), inner, max(height-2, 0))
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Render(body)
}

// headerRows is the blank line, brand and spacer above the first section.
const headerRows = 3

// TabAt maps a row of the rendered sidebar, top border included, to the tab
// drawn there.
func TabAt(row int) (Tab, bool) {
	line := headerRows + 1 // top border
	for _, sec := range sections {
		line++ // section title
		for _, t := range sec.tabs {
			if line == row {
				return t, true
			}
			line++
		}
		line++ // spacer
	}
	return 0, false
}

func item(t Tab, active bool, width int) string {
	key := strconv.Itoa(int(t) + 1)
	label := render.TruncateAndPad(t.Title(), width-5)
	if active {
		return " " + activeStyle().Render(" "+key+" "+label)
	}
	return " " + keyStyle().Render(" "+key+" ") + inactiveStyle().Render(label)
}
