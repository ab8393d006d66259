package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "page", "player", "scrub"
}

// All contains all key bindings, in help order.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionNextPage, []string{"tab"}, "Next page", "global"},
	{ActionPrevPage, []string{"shift+tab"}, "Previous page", "global"},
	{ActionPageHome, []string{"1"}, "Home", "global"},
	{ActionPageDiscover, []string{"2"}, "Discover", "global"},
	{ActionPageRecognize, []string{"3"}, "Recognize", "global"},
	{ActionPageArtist, []string{"4"}, "Artist", "global"},
	{ActionPageRecent, []string{"5"}, "Recently played", "global"},
	{ActionPageMost, []string{"6"}, "Most played", "global"},
	{ActionPageAbout, []string{"7"}, "About", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Page content
	{ActionMoveUp, []string{"k", "up"}, "Move up", "page"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "page"},
	{ActionSelect, []string{"enter"}, "Play selected", "page"},
	{ActionShowMore, []string{"m"}, "Show more", "page"},
	{ActionFocusSearch, []string{"/"}, "Search", "page"},
	{ActionRecognize, []string{"r"}, "Recognize song", "page"},

	// Player bar
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "player"},
	{ActionSeekBack, []string{"left"}, "Seek -5s", "player"},
	{ActionSeekForward, []string{"right"}, "Seek +5s", "player"},
	{ActionDragBack, []string{"shift+left"}, "Scrub back", "player"},
	{ActionDragForward, []string{"shift+right"}, "Scrub forward", "player"},
	{ActionTogglePlayerDisplay, []string{"v"}, "Toggle player display", "player"},
	{ActionClosePlayer, []string{"x"}, "Close player", "player"},

	// While scrubbing
	{ActionDragRelease, []string{"esc", "enter"}, "Release scrub", "scrub"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// KeyBinding converts b for the bubbles help view. The space key is shown
// as "space".
func (b Binding) KeyBinding() key.Binding {
	shown := b.Keys[0]
	if shown == " " {
		shown = "space"
	}
	return key.NewBinding(
		key.WithKeys(b.Keys...),
		key.WithHelp(shown, b.Description),
	)
}

// ShortHelp returns the bindings shown in the footer.
func ShortHelp() []key.Binding {
	short := []Action{ActionPlayPause, ActionSeekBack, ActionSeekForward, ActionRecognize, ActionHelp, ActionQuit}
	out := make([]key.Binding, 0, len(short))
	for _, a := range short {
		for _, b := range All {
			if b.Action == a {
				out = append(out, b.KeyBinding())
				break
			}
		}
	}
	return out
}

// FullHelp returns every binding grouped by context, one column each.
func FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, ctx := range []string{"global", "page", "player", "scrub"} {
		var col []key.Binding
		for _, b := range ByContext(ctx) {
			col = append(col, b.KeyBinding())
		}
		cols = append(cols, col)
	}
	return cols
}
