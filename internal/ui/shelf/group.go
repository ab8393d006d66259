package shelf

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifi/internal/keymap"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/ui/list"
)

// Group stacks shelves vertically. Moving past the end of one shelf
// focuses the next.
type Group struct {
	shelves []Model
	focus   int
	focused bool

	width, height int
}

// NewGroup creates a group over shelves.
func NewGroup(shelves ...Model) Group {
	return Group{shelves: shelves}
}

// Len returns the number of shelves.
func (g Group) Len() int { return len(g.shelves) }

// At returns shelf i.
func (g *Group) At(i int) *Model { return &g.shelves[i] }

// Focus returns the index of the focused shelf.
func (g Group) Focus() int { return g.focus }

// Load starts every shelf's search.
func (g *Group) Load(r *task.Runner, s Searcher) {
	for i := range g.shelves {
		g.shelves[i].Load(r, s)
	}
	g.relayout()
}

// Cancel stops every in-flight search.
func (g *Group) Cancel(r *task.Runner) {
	for i := range g.shelves {
		g.shelves[i].Cancel(r)
	}
}

// Update routes load results. It reports whether msg was consumed.
func (g *Group) Update(msg tea.Msg) bool {
	for i := range g.shelves {
		if g.shelves[i].Update(msg) {
			g.relayout()
			return true
		}
	}
	return false
}

// Track resolves a PlayMsg addressed to one of the group's shelves.
func (g Group) Track(msg PlayMsg) (playback.Track, bool) {
	for _, s := range g.shelves {
		if s.id == msg.Shelf {
			return s.Track(msg.Generation, msg.Index)
		}
	}
	return playback.Track{}, false
}

// Owns reports whether a shelf with id belongs to the group.
func (g Group) Owns(id int) bool {
	return g.Shelf(id) != nil
}

// Shelf returns the shelf with id, nil when the group has none.
func (g *Group) Shelf(id int) *Model {
	for i := range g.shelves {
		if g.shelves[i].id == id {
			return &g.shelves[i]
		}
	}
	return nil
}

// SetFocused gives or removes input focus.
func (g *Group) SetFocused(focused bool) {
	g.focused = focused
	for i := range g.shelves {
		g.shelves[i].SetFocused(focused && i == g.focus)
	}
}

// Handle applies a navigation action to the focused shelf.
func (g *Group) Handle(a keymap.Action) tea.Cmd {
	if !g.focused || len(g.shelves) == 0 {
		return nil
	}
	action, cmd := g.shelves[g.focus].Handle(a)
	if a == keymap.ActionShowMore {
		g.relayout()
	}
	switch action { //nolint:exhaustive // only focus changes matter here
	case list.ActionLeaveBottom:
		if next := g.nextWithRows(g.focus, 1); next >= 0 {
			g.focusShelf(next)
			g.shelves[next].SelectFirst()
		}
	case list.ActionLeaveTop:
		if prev := g.nextWithRows(g.focus, -1); prev >= 0 {
			g.focusShelf(prev)
			g.shelves[prev].SelectLast()
		}
	}
	return cmd
}

// nextWithRows finds the nearest shelf in direction dir that has rows.
func (g Group) nextWithRows(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(g.shelves); i += dir {
		if len(g.shelves[i].Visible()) > 0 {
			return i
		}
	}
	return -1
}

func (g *Group) focusShelf(i int) {
	g.focus = i
	g.SetFocused(g.focused)
}

// SetSize splits the height between shelves. Shelves get their natural
// height when everything fits, otherwise an equal share.
func (g *Group) SetSize(width, height int) {
	g.width, g.height = width, height
	g.relayout()
}

func (g *Group) relayout() {
	width, height := g.width, g.height
	if len(g.shelves) == 0 {
		return
	}
	gaps := len(g.shelves) - 1
	need := gaps
	for _, s := range g.shelves {
		need += s.NaturalHeight()
	}
	share := max((height-gaps)/len(g.shelves), 2)
	for i := range g.shelves {
		h := g.shelves[i].NaturalHeight()
		if need > height {
			h = min(h, share)
		}
		g.shelves[i].SetSize(width, h)
	}
}

// View renders the shelves separated by a blank line.
func (g Group) View(spinner, playingID string) string {
	parts := make([]string, 0, len(g.shelves))
	for _, s := range g.shelves {
		parts = append(parts, s.View(spinner, playingID))
	}
	return strings.Join(parts, "\n\n")
}
