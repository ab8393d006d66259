package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "Pasoori", "Pasoori"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "a\nb", "ab"},
		{"escape dropped", "a\x1b[31mb", "a[31mb"},
		{"nbsp replaced", "a\u00a0b", "a b"},
		{"invalid utf8 dropped", "a\xffb", "ab"},
		{"c1 control dropped", "a\u0085b", "ab"},
		{"wide runes kept", "日本語", "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"empty string", "", 10, ""},
		{"wide characters", "日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxWidth))
		})
	}
}

func TestTruncateStyled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("hello world")

	out := TruncateStyled(styled, 6)
	assert.Equal(t, "hello…", ansi.Strip(out))
	assert.Equal(t, 6, lipgloss.Width(out))
	assert.Empty(t, TruncateStyled(styled, 0))
}

func TestFitStyled(t *testing.T) {
	assert.Equal(t, "ab   ", FitStyled("ab", 5))
	assert.Equal(t, 4, lipgloss.Width(FitStyled("abcdefgh", 4)))
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left     right", Row("left", "right", 14))
	assert.Equal(t, "left right", Row("left", "right", 3), "at least one space")
}

func TestBlock(t *testing.T) {
	out := Block("one\ntwo is long", 5, 3)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, l := range lines {
		assert.Equal(t, 5, lipgloss.Width(l))
	}
	assert.Equal(t, "one  ", lines[0])
	assert.Equal(t, "     ", lines[2])
	assert.Empty(t, Block("x", 0, 3))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab  ", Center("ab", 6))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{5 * time.Second, "0:05"},
		{65*time.Second + 900*time.Millisecond, "1:05"},
		{59*time.Minute + 59*time.Second, "59:59"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.d))
		})
	}
}
