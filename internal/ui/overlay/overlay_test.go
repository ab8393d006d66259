package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/hifi/internal/ui/testutil"
)

func grid(width, height int, r string) string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(r, width)
	}
	return strings.Join(lines, "\n")
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		top   string
		width int
		want  string
	}{
		{"replaces visible span", "..........", "  ab  ", 10, "..ab......"},
		{"blank line keeps base", "....\n....", "\n xy", 4, "....\n.xy."},
		{"pads short base", "..", "   zz", 5, ".. zz"},
		{"extra top lines ignored", "....", "a\nb", 4, "a..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(tt.base, tt.top, tt.width))
		})
	}
}

func TestCompose_KeepsStyledBase(t *testing.T) {
	base := lipgloss.NewStyle().Bold(true).Render("0123456789")
	out := Compose(base, "   XY", 10)

	assert.Equal(t, "012XY56789", testutil.StripANSI(out))
}

func TestCenter(t *testing.T) {
	out := Center(grid(10, 5, "."), "ab\ncd", 10, 5)
	lines := strings.Split(out, "\n")

	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "....ab....", lines[1])
	assert.Equal(t, "....cd....", lines[2])
	assert.Equal(t, "..........", lines[4])
	assert.Equal(t, 10, testutil.MaxWidth(out))
}
