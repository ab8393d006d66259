package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no ansi codes", "hello world", "hello world"},
		{"color codes", "\x1b[31mred\x1b[0m text", "red text"},
		{"multiple params", "\x1b[1;32mbold green\x1b[0m", "bold green"},
		{"truecolor", "\x1b[38;2;238;16;176mHiFi\x1b[0m", "HiFi"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripANSI(tt.input))
		})
	}
}

func TestLines(t *testing.T) {
	out := "\x1b[1mone\x1b[0m\ntwo\n\n  \n"
	assert.Equal(t, []string{"one", "two"}, Lines(out))
	assert.Empty(t, Lines(""))
}

func TestFindLine(t *testing.T) {
	out := "Weekly Top Songs\n1. Track A\n2. Track B"
	assert.Equal(t, "2. Track B", FindLine(out, "Track B"))
	assert.Empty(t, FindLine(out, "missing"))
}

func TestContains(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("Listening...")
	assert.True(t, Contains(styled, "Listening..."))
	assert.False(t, Contains(styled, "Song recognized!"))
}

func TestMaxWidth(t *testing.T) {
	assert.Equal(t, 5, MaxWidth("abc\n\x1b[31mabcde\x1b[0m\nab"))
	assert.Equal(t, 4, MaxWidth("日本"))
}

func TestKey(t *testing.T) {
	for _, s := range []string{"enter", "esc", "tab", "shift+tab", "up", "left", "shift+right", "ctrl+c", "q", "1", "/"} {
		assert.Equal(t, s, Key(s).String(), s)
	}
	assert.Equal(t, tea.KeySpace, Key("space").Type)
}

func TestType(t *testing.T) {
	msgs := Type("lofi")
	assert.Len(t, msgs, 4)
	assert.Equal(t, "l", msgs[0].String())
	assert.Equal(t, "i", msgs[3].String())
}
