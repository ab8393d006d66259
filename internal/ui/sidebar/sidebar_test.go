package sidebar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestTabNavigation(t *testing.T) {
	assert.Equal(t, TabDiscover, TabHome.Next())
	assert.Equal(t, TabHome, TabAbout.Next())
	assert.Equal(t, TabAbout, TabHome.Prev())
	assert.True(t, TabMost.Valid())
	assert.False(t, Tab(-1).Valid())
	assert.False(t, tabCount.Valid())
	assert.Len(t, Tabs(), 7)
}

func TestEveryTabInOneSection(t *testing.T) {
	seen := map[Tab]int{}
	for _, s := range sections {
		for _, tab := range s.tabs {
			seen[tab]++
		}
	}
	for _, tab := range Tabs() {
		assert.Equal(t, 1, seen[tab], tab.Title())
		assert.NotEmpty(t, tab.Title())
	}
}

func TestRender(t *testing.T) {
	out := Render(TabRecognize, 24)
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 24)
	for _, l := range lines {
		assert.Equal(t, Width, lipgloss.Width(l))
	}
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "HiFi")
	assert.Contains(t, plain, "Menu")
	assert.Contains(t, plain, " 3 Recognize")
	assert.Contains(t, plain, "Recently Played")
	assert.Contains(t, plain, "About Us")
}

func TestTabAt_MatchesRenderedRows(t *testing.T) {
	lines := strings.Split(ansi.Strip(Render(TabHome, 24)), "\n")

	for _, tab := range Tabs() {
		found := false
		for row := range lines {
			if got, ok := TabAt(row); ok && got == tab {
				assert.Contains(t, lines[row], tab.Title())
				found = true
			}
		}
		assert.True(t, found, tab.Title())
	}

	_, ok := TabAt(0)
	assert.False(t, ok, "border row")
	_, ok = TabAt(headerRows + 1)
	assert.False(t, ok, "section title row")
}
