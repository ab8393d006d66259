package app

import (
	"strconv"

	"github.com/llehouerou/hifi/internal/ui/list"
	"github.com/llehouerou/hifi/internal/ui/render"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

// numWidth fits "99." plus a space.
const numWidth = 4

// row is one line of a page list: a number or marker, the main text and
// trailing details.
type row struct {
	lead    string
	text    string
	meta    string
	playing bool
}

func number(i int) string { return strconv.Itoa(i+1) + "." }

// listRows renders the visible window of l, one row per item.
func listRows[T any](l list.Model[T], width int, build func(int, T) row) []string {
	items := l.Items()
	start, end := l.VisibleRange()
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		r := build(i, items[i])
		selected := l.IsFocused() && i == l.SelectedIndex()
		out = append(out, r.render(width, selected))
	}
	return out
}

func (r row) render(width int, selected bool) string {
	lead := render.Pad(r.lead, numWidth)
	text := render.Sanitize(r.text)
	meta := ""
	if r.meta != "" {
		meta = " · " + render.Sanitize(r.meta)
	}
	if selected {
		return styles.T().S().Cursor.Render(render.TruncateAndPad(" "+lead+text+meta, width))
	}
	textStyle := styles.T().S().Base
	if r.playing {
		textStyle = styles.T().S().Playing
	}
	line := " " + textStyle.Render(lead+text) + styles.T().S().Muted.Render(meta)
	return render.TruncateStyled(line, width)
}
