// Package sidebar renders the page navigation column.
package sidebar

// Tab identifies a page.
type Tab int

const (
	TabHome Tab = iota
	TabDiscover
	TabRecognize
	TabArtist
	TabRecent
	TabMost
	TabAbout

	tabCount
)

// Tabs lists every page in display order.
func Tabs() []Tab {
	tabs := make([]Tab, 0, tabCount)
	for t := range tabCount {
		tabs = append(tabs, t)
	}
	return tabs
}

// Title is the name shown in the sidebar.
func (t Tab) Title() string {
	switch t {
	case TabHome:
		return "Home"
	case TabDiscover:
		return "Discover"
	case TabRecognize:
		return "Recognize"
	case TabArtist:
		return "Artist"
	case TabRecent:
		return "Recently Played"
	case TabMost:
		return "Most Played"
	case TabAbout:
		return "About Us"
	}
	return ""
}

func (t Tab) String() string { return t.Title() }

// Next returns the following tab, wrapping around.
func (t Tab) Next() Tab { return (t + 1) % tabCount }

// Prev returns the preceding tab, wrapping around.
func (t Tab) Prev() Tab { return (t + tabCount - 1) % tabCount }

// Valid reports whether t names a page.
func (t Tab) Valid() bool { return t >= 0 && t < tabCount }

type section struct {
	title string
	tabs  []Tab
}

var sections = []section{
	{"Menu", []Tab{TabHome, TabDiscover, TabRecognize, TabArtist}},
	{"Library", []Tab{TabRecent, TabMost}},
	{"General", []Tab{TabAbout}},
}
