package ui

// Base is embedded by scrolling components for the focus flag and the row
// budget the layout hands them. Width is accepted for symmetry with the
// other components but rows are cut by the caller's renderer.
type Base struct {
	rows    int
	focused bool
}

func (b *Base) SetFocused(focused bool) { b.focused = focused }

func (b Base) IsFocused() bool { return b.focused }

func (b *Base) SetSize(_, height int) { b.rows = max(height, 0) }

// Height is the number of rows the component may show.
func (b Base) Height() int { return b.rows }
