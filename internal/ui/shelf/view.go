package shelf

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/ui/render"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

const (
	numWidth    = 4
	artCell     = 2
	showMoreKey = "m"
)

func rowStyle() lipgloss.Style     { return styles.T().S().Base }
func artistStyle() lipgloss.Style  { return styles.T().S().Muted }
func cursorStyle() lipgloss.Style  { return styles.T().S().Cursor }
func playingStyle() lipgloss.Style { return styles.T().S().Playing }
func hintStyle() lipgloss.Style    { return styles.T().S().Subtle }
func failStyle() lipgloss.Style    { return styles.T().S().Error }

// SetSize sets the area available to the shelf, heading included.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
}

func (m *Model) layout() {
	rows := m.height - 1
	if m.CanShowMore() {
		rows--
	}
	m.list.SetSize(m.width, max(rows, 1))
}

// NaturalHeight is the height needed to show every visible row.
func (m Model) NaturalHeight() int {
	h := 1 + max(len(m.list.Items()), 1)
	if m.CanShowMore() {
		h++
	}
	return h
}

// View renders the heading and rows. spinner is the current spinner frame
// and playingID highlights the current track.
func (m Model) View(spinner, playingID string) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lines := []string{m.heading(spinner)}

	switch {
	case m.status == StatusLoading:
		lines = append(lines, "  "+hintStyle().Render(spinner+" Loading..."))
	case m.status == StatusFailed:
		lines = append(lines, "  "+failStyle().Render(m.params.FailLabel))
	case m.status == StatusReady && len(m.tracks) == 0:
		lines = append(lines, "  "+hintStyle().Render(m.params.EmptyLabel))
	default:
		items := m.list.Items()
		start, end := m.list.VisibleRange()
		for i := start; i < end; i++ {
			selected := m.IsFocused() && i == m.list.SelectedIndex()
			lines = append(lines, m.row(i, items[i], selected, items[i].ID == playingID))
		}
		if m.CanShowMore() {
			more := strconv.Itoa(len(m.tracks)-len(items)) + " more"
			lines = append(lines, "  "+hintStyle().Render("Show more ("+more+", "+showMoreKey+")"))
		}
	}
	return render.Block(strings.Join(lines, "\n"), m.width, min(m.height, len(lines)))
}

func (m Model) heading(spinner string) string {
	title := m.params.Title
	var h string
	if i := strings.LastIndexByte(title, ' '); i >= 0 {
		h = styles.Heading(title[:i], title[i+1:])
	} else {
		h = styles.Heading("", title)
	}
	if m.status == StatusLoading && spinner != "" {
		h += " " + hintStyle().Render(spinner)
	}
	return h
}

// artWidth is the swatch cell plus its gap, 0 without a fetcher.
func (m Model) artWidth() int {
	if m.params.Art == nil {
		return 0
	}
	return artCell + 1
}

// artView is the swatch of row i: the thumbnail's average colour once it
// arrived, a placeholder until then.
func (m Model) artView(i int) string {
	if i < len(m.art) && m.art[i].status == ArtReady && m.art[i].swatch != "" {
		return lipgloss.NewStyle().
			Background(lipgloss.Color(m.art[i].swatch)).
			Render(strings.Repeat(" ", artCell))
	}
	return hintStyle().Render(strings.Repeat("░", artCell))
}

func (m Model) row(i int, t playback.Track, selected, playing bool) string {
	num := render.Pad(strconv.Itoa(i+1)+".", numWidth-1)
	if playing {
		num = render.Pad("▶", numWidth-1)
	}
	avail := max(m.width-numWidth-1-m.artWidth(), 0)
	titleW := avail * 6 / 10
	artistW := avail - titleW

	title := render.TruncateAndPad(t.Title, titleW)
	artist := render.TruncateAndPad(t.Artist, artistW)

	lead, text := " "+num, title
	textStyle := rowStyle()
	switch {
	case selected:
		textStyle = cursorStyle()
	case playing:
		textStyle = playingStyle()
	}
	if m.params.Art != nil {
		lead = textStyle.Render(lead) + m.artView(i) + textStyle.Render(" ")
	} else {
		lead = textStyle.Render(lead)
	}
	if selected {
		return lead + cursorStyle().Render(text+" "+artist)
	}
	return lead + textStyle.Render(text) + " " + artistStyle().Render(artist)
}
