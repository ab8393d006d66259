package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifi/internal/ui/styles"
)

const (
	playSymbol    = "▶"
	pauseSymbol   = "⏸"
	errorSymbol   = "✕"
	filledSegment = "━"
	emptySegment  = "─"
	scrubHandle   = "●"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border)
}

func titleStyle() lipgloss.Style { return styles.T().S().Title }

func artistStyle() lipgloss.Style { return styles.T().S().Muted }

func timeStyle() lipgloss.Style { return styles.T().S().Muted }

func statusStyle() lipgloss.Style { return styles.T().S().Accent }

func errorStyle() lipgloss.Style { return styles.T().S().Error }

func filledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func emptyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().BgBar)
}
