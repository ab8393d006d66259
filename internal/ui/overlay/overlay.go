// Package overlay draws a box on top of an already rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Compose draws top over base line by line. On each line the visible span
// of top, from its first to its last non-space cell, replaces the base
// cells underneath. Blank lines of top leave base untouched.
func Compose(base, top string, width int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")

	for i, line := range topLines {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimRight(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		start := ansi.StringWidth(plain) - ansi.StringWidth(strings.TrimLeft(plain, " "))
		end := ansi.StringWidth(trimmed)
		content := ansi.Cut(line, start, end)

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		out := ansi.Cut(under, 0, start) + content
		if end < width {
			out += ansi.Cut(under, end, width)
		}
		baseLines[i] = out
	}

	return strings.Join(baseLines, "\n")
}

// Center draws box in the middle of a width x height base.
func Center(base, box string, width, height int) string {
	x := max((width-lipgloss.Width(box))/2, 0)
	y := max((height-lipgloss.Height(box))/2, 0)

	pad := strings.Repeat(" ", x)
	lines := strings.Split(box, "\n")
	shifted := make([]string, y, y+len(lines))
	for _, l := range lines {
		shifted = append(shifted, pad+l)
	}
	return Compose(base, strings.Join(shifted, "\n"), width)
}
