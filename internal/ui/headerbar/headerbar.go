// Package headerbar renders the one-line title above the page.
package headerbar

import (
	"strings"

	"github.com/llehouerou/hifi/internal/ui/render"
	"github.com/llehouerou/hifi/internal/ui/sidebar"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

// Height is the fixed height of the header bar.
const Height = 1

// Render shows the active page title on the left and hint on the right,
// e.g. "Recognize" ... "? help".
func Render(active sidebar.Tab, hint string, width int) string {
	if width < 20 {
		return ""
	}
	left := " " + title(active)
	right := styles.T().S().Subtle.Render(hint) + " "
	return render.FitStyled(render.Row(left, right, width), width)
}

// title splits the page name so its last word is accented, as in
// "Recently Played".
func title(t sidebar.Tab) string {
	name := t.Title()
	i := strings.LastIndexByte(name, ' ')
	if i < 0 {
		return styles.Heading("", name)
	}
	return styles.Heading(name[:i], name[i+1:])
}
