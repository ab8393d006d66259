package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/history"
	"github.com/llehouerou/hifi/internal/keymap"
	"github.com/llehouerou/hifi/internal/lastfm"
	"github.com/llehouerou/hifi/internal/ui/headerbar"
	"github.com/llehouerou/hifi/internal/ui/jobbar"
	"github.com/llehouerou/hifi/internal/ui/layout"
	"github.com/llehouerou/hifi/internal/ui/overlay"
	"github.com/llehouerou/hifi/internal/ui/playerbar"
	"github.com/llehouerou/hifi/internal/ui/render"
	"github.com/llehouerou/hifi/internal/ui/sidebar"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

// helpKeys adapts the key map to the bubbles help view.
type helpKeys struct{}

func (helpKeys) ShortHelp() []key.Binding  { return keymap.ShortHelp() }
func (helpKeys) FullHelp() [][]key.Binding { return keymap.FullHelp() }

func (m Model) playerState() playerbar.State {
	s := playerbar.FromPlayback(m.controller.State())
	s.Spinner = m.spinner.View()
	s.Thumbnail = m.thumb.data
	s.ImageID = thumbImageID
	s.Kitty = m.kitty
	s.Frame = m.frame
	return s
}

// bodyHeight is the height above the player bar.
func (m Model) bodyHeight() int {
	return layout.BodyHeight(m.height, playerbar.Height(m.playerState()))
}

func (m Model) mainWidth() int {
	return layout.MainWidth(m.width, sidebar.Width)
}

func (m Model) contentWidth() int {
	return layout.ContentWidth(m.mainWidth())
}

func (m Model) helpView() string {
	return m.help.View(helpKeys{})
}

// pageHeight is what is left for the page after the header, the job bar
// and the help line.
func (m Model) pageHeight() int {
	return layout.PageHeight(m.height, layout.Opts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: playerbar.Height(m.playerState()),
		JobBarHeight:    jobbar.Height(m.runner.Len()),
		HelpHeight:      lipgloss.Height(m.helpView()),
	})
}

// layout sizes every page for the current window.
func (m *Model) layout() {
	w, h := m.contentWidth(), m.pageHeight()
	m.help.Width = m.mainWidth()

	m.home.SetSize(w, h)

	m.discover.input.Width = max(w-lipgloss.Width(m.discover.input.Prompt)-1, 1)
	m.discover.results.SetSize(w, max(h-2, 0))

	m.recent.list.SetSize(w, max(h-2, 0))
	m.most.list.SetSize(w, max(h-2, 0))

	// artist name and spacer above the sections
	p := &m.artist
	videos, top, similar := layout.ArtistSections(max(h-2, 0), p.videos.NaturalHeight(), p.status == artistReady)
	p.videos.SetSize(w, videos)
	p.top.SetSize(w, top)
	p.similar.SetSize(w, similar)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	bodyH := m.bodyHeight()
	mainW := m.mainWidth()

	hint := strings.Join(m.keys.KeysFor(keymap.ActionHelp), "/") + " help"
	main := []string{
		headerbar.Render(m.Active, hint, mainW),
		"",
		m.padded(m.pageView(), m.pageHeight()),
	}
	if m.runner.Len() > 0 {
		main = append(main, jobbar.Render(
			jobbar.FromHandles(m.runner.Active()), m.spinner.View(), time.Now(), mainW))
	}
	main = append(main, m.helpView())

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar.Render(m.Active, bodyH),
		render.Block(strings.Join(main, "\n"), mainW, bodyH),
	)
	if m.showHelp {
		body = overlay.Center(body, m.helpPanel(), m.width, bodyH)
	}

	if bar := playerbar.Render(m.playerState(), m.width); bar != "" {
		return body + "\n" + bar
	}
	return body
}

// padded indents page content and clips it to the page area.
func (m Model) padded(s string, height int) string {
	pad := strings.Repeat(" ", layout.PagePadding)
	lines := strings.Split(render.Block(s, m.contentWidth(), height), "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

// helpPanel lists every binding, one column per context.
func (m Model) helpPanel() string {
	full := m.help.FullHelpView(keymap.FullHelp())
	return styles.PanelStyle(true).Padding(0, 1).Render(
		styles.Heading("Key", "Bindings") + "\n\n" + full)
}

func (m Model) playingID() string {
	if t := m.controller.State().Track; t != nil {
		return t.ID
	}
	return ""
}

func (m Model) pageView() string {
	switch m.Active {
	case sidebar.TabHome:
		return m.home.View(m.spinner.View(), m.playingID())
	case sidebar.TabDiscover:
		return m.discoverView()
	case sidebar.TabRecognize:
		return m.recognizeView()
	case sidebar.TabArtist:
		return m.artistView()
	case sidebar.TabRecent:
		return m.historyView(&m.recent)
	case sidebar.TabMost:
		return m.historyView(&m.most)
	case sidebar.TabAbout:
		return m.aboutView()
	}
	return ""
}

func hintStyle() lipgloss.Style  { return styles.T().S().Subtle }
func mutedStyle() lipgloss.Style { return styles.T().S().Muted }
func errorStyle() lipgloss.Style { return styles.T().S().Error }

func (m Model) discoverView() string {
	lines := []string{m.discover.input.View(), ""}
	if m.discover.results.Query() == "" {
		lines = append(lines, hintStyle().Render("Press / to search, enter to run the query."))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, m.discover.results.View(m.spinner.View(), m.playingID()))
	return strings.Join(lines, "\n")
}

func (m Model) recognizeView() string {
	if m.recognizer == nil {
		return hintStyle().Render("Song recognition is not configured.")
	}
	w := m.contentWidth()

	status := m.recognize.status.Label()
	switch m.recognize.status {
	case recognizeListening:
		status = m.spinner.View() + " " + status
	case recognizeNotFound, recognizeFailed:
		status = errorStyle().Render(status)
	default:
		status = styles.T().S().Accent.Render(status)
	}

	lines := []string{"", render.Center(status, w), ""}
	if m.recognize.status == recognizeRecognized {
		r := m.recognize.result
		lines = append(lines, render.Center(styles.T().S().Title.Render(render.Sanitize(r.Title)), w))
		lines = append(lines, render.Center(mutedStyle().Render(render.Sanitize(r.Artist)), w))
		if r.Album != "" {
			lines = append(lines, render.Center(hintStyle().Render(render.Sanitize(r.Album)), w))
		}
		lines = append(lines, "")
	}
	if m.play.err != "" && m.play.origin == sidebar.TabRecognize {
		lines = append(lines, render.Center(errorStyle().Render(m.play.err), w), "")
	}
	if m.recognize.status != recognizeListening {
		lines = append(lines, render.Center(hintStyle().Render("press r or click to listen"), w))
	}
	return strings.Join(lines, "\n")
}

func (m Model) artistView() string {
	p := m.artist
	if p.name == "" {
		return hintStyle().Render("Play a song to see its artist.")
	}
	lines := []string{styles.Heading("", render.Sanitize(p.name)), ""}
	if v := p.videos.View(m.spinner.View(), m.playingID()); v != "" {
		lines = append(lines, v)
	}

	switch p.status {
	case artistLoading:
		lines = append(lines, "", hintStyle().Render(m.spinner.View()+" Loading artist details..."))
	case artistFailed:
		lines = append(lines, "", errorStyle().Render(errmsg.Format(errmsg.OpArtistLoad, p.err)))
	case artistUnavailable:
		lines = append(lines, "", hintStyle().Render("Add a Last.fm API key for top tracks and similar artists."))
	case artistReady:
		w := m.contentWidth()
		lines = append(lines, "", styles.Heading("Top", "Tracks"))
		lines = append(lines, listRows(p.top, w, func(i int, t lastfm.TopTrack) row {
			return row{lead: number(i), text: t.Name, meta: t.Plays()}
		})...)
		lines = append(lines, "", styles.Heading("Similar", "Artists"))
		lines = append(lines, listRows(p.similar, w, func(i int, a lastfm.SimilarArtist) row {
			return row{lead: number(i), text: a.Name, meta: a.Match()}
		})...)
	}
	return strings.Join(lines, "\n")
}

func (m Model) historyView(p *historyPage) string {
	lines := []string{hintStyle().Render(m.history.Summary())}
	if p.list.Len() == 0 {
		lines = append(lines, "", hintStyle().Render("Nothing played yet."))
		return strings.Join(lines, "\n")
	}
	lines = append(lines, "")

	now := time.Now()
	playing := m.playingID()
	lines = append(lines, listRows(p.list, m.contentWidth(), func(i int, e history.Entry) row {
		r := row{lead: number(i), text: e.Track.Title + " · " + e.Track.Artist, meta: e.PlayedAgo(now)}
		if p.kind == historyMost {
			r.meta = e.PlaysLabel()
		}
		if e.Track.ID == playing {
			r.lead, r.playing = "▶", true
		}
		return r
	})...)
	return strings.Join(lines, "\n")
}

func (m Model) aboutView() string {
	version := m.version
	if version == "" {
		version = "dev"
	}
	lines := []string{
		styles.Brand("HiFi") + " " + hintStyle().Render(version),
		"",
		"A terminal music player for streaming songs from YouTube.",
		"Browse curated shelves, search the catalog, recognize what is",
		"playing around you and explore artists through Last.fm.",
		"",
		mutedStyle().Render("Playback runs through mpv. Media keys work through MPRIS."),
	}
	return strings.Join(lines, "\n")
}
