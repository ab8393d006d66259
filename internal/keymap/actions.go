// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit     Action = "quit"
	ActionHelp     Action = "help"
	ActionNextPage Action = "next_page"
	ActionPrevPage Action = "prev_page"

	// Page switching (1-7)
	ActionPageHome      Action = "page_home"
	ActionPageDiscover  Action = "page_discover"
	ActionPageRecognize Action = "page_recognize"
	ActionPageArtist    Action = "page_artist"
	ActionPageRecent    Action = "page_recent"
	ActionPageMost      Action = "page_most"
	ActionPageAbout     Action = "page_about"

	// Page content
	ActionMoveUp      Action = "move_up"
	ActionMoveDown    Action = "move_down"
	ActionSelect      Action = "select" // enter - play selected
	ActionShowMore    Action = "show_more"
	ActionFocusSearch Action = "focus_search"
	ActionRecognize   Action = "recognize"

	// Player bar
	ActionPlayPause           Action = "play_pause"
	ActionSeekForward         Action = "seek_forward"
	ActionSeekBack            Action = "seek_back"
	ActionDragForward         Action = "drag_forward"
	ActionDragBack            Action = "drag_back"
	ActionDragRelease         Action = "drag_release"
	ActionTogglePlayerDisplay Action = "toggle_player_display"
	ActionClosePlayer         Action = "close_player"
)

// Pages lists the page actions in tab order.
var Pages = []Action{
	ActionPageHome,
	ActionPageDiscover,
	ActionPageRecognize,
	ActionPageArtist,
	ActionPageRecent,
	ActionPageMost,
	ActionPageAbout,
}
