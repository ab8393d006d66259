// Package layout provides pure functions for window dimension calculations.
package layout

// PagePadding is the blank column on each side of the page content.
const PagePadding = 1

// Spacer is the blank line between the header and the page.
const Spacer = 1

// Opts are the heights of the bars around the page.
type Opts struct {
	HeaderHeight    int
	PlayerBarHeight int // 0 when the player is idle
	JobBarHeight    int // 0 when no task runs
	HelpHeight      int
}

// BodyHeight is the window height above the player bar.
func BodyHeight(windowHeight, playerBarHeight int) int {
	return max(windowHeight-playerBarHeight, 0)
}

// PageHeight is the height left for the page between the header and the
// job bar and help line.
func PageHeight(windowHeight int, o Opts) int {
	h := BodyHeight(windowHeight, o.PlayerBarHeight)
	h -= o.HeaderHeight + Spacer
	h -= o.JobBarHeight
	h -= o.HelpHeight
	return max(h, 0)
}

// MainWidth is the window width right of the sidebar.
func MainWidth(windowWidth, sidebarWidth int) int {
	return max(windowWidth-sidebarWidth, 0)
}

// ContentWidth is the page width inside its padding.
func ContentWidth(mainWidth int) int {
	return max(mainWidth-2*PagePadding, 0)
}

// PlayerBarRow is the 0-based row where the player bar starts, or -1 when
// the bar is hidden.
func PlayerBarRow(windowHeight, playerBarHeight int) int {
	if playerBarHeight == 0 {
		return -1
	}
	return BodyHeight(windowHeight, playerBarHeight)
}

// sectionOverhead is the spacer and heading above each Last.fm list.
const sectionOverhead = 2

// ArtistSections splits the Artist page height below the artist name. The
// videos shelf keeps its natural height, capped at half the page once the
// lists are shown; the lists share the rest.
func ArtistSections(height, videosNatural int, withLists bool) (videos, top, similar int) {
	videos = min(videosNatural, height)
	if !withLists {
		return max(videos, 0), 0, 0
	}
	videos = max(min(videos, height/2), min(2, height))
	lists := max(height-videos-2*sectionOverhead, 0)
	return videos, lists / 2, lists - lists/2
}
