// Package styles holds the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles for the application.
type Theme struct {
	// Brand colors
	Primary   lipgloss.Color // Pink - active page, accents, progress
	Secondary lipgloss.Color // Cyan - gradient end
	Deep      lipgloss.Color // Dark indigo - pulse low point

	// Text hierarchy (most to least prominent)
	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	// Backgrounds
	BgBase   lipgloss.Color
	BgBar    lipgloss.Color // Player bar, progress track
	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common UI patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Accent  lipgloss.Style // Bold pink
	Playing lipgloss.Style // Currently playing track
	Cursor  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#ee10b0"),
	Secondary: lipgloss.Color("#0e9eef"),
	Deep:      lipgloss.Color("#1e1e4f"),

	FgBase:   lipgloss.Color("#ffffff"),
	FgMuted:  lipgloss.Color("#b0b0c0"),
	FgSubtle: lipgloss.Color("#6b6b80"),

	BgBase:   lipgloss.Color("#1e1e2f"),
	BgBar:    lipgloss.Color("#3b3b4f"),
	BgCursor: lipgloss.Color("#2c2c40"),

	Border:      lipgloss.Color("#3b3b4f"),
	BorderFocus: lipgloss.Color("#ee10b0"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Accent:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Success: lipgloss.NewStyle().Foreground(t.Success),
		Error:   lipgloss.NewStyle().Foreground(t.Error),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

// Heading renders "<plain> <accent>" the way page titles are shown, e.g.
// "Weekly Top" + "Songs".
func Heading(plain, accent string) string {
	s := T().S()
	if plain == "" {
		return s.Accent.Render(accent)
	}
	return s.Title.Render(plain) + " " + s.Accent.Render(accent)
}
