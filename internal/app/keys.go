package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifi/internal/app/handler"
	"github.com/llehouerou/hifi/internal/keymap"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/ui/headerbar"
	"github.com/llehouerou/hifi/internal/ui/layout"
	"github.com/llehouerou/hifi/internal/ui/list"
	"github.com/llehouerou/hifi/internal/ui/playerbar"
	"github.com/llehouerou/hifi/internal/ui/sidebar"
)

// seekStep is the jump of one seek or scrub key press.
const seekStep = 5 * time.Second

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.Active == sidebar.TabDiscover && m.discover.input.Focused() {
		return m.handleSearchInput(msg)
	}

	key := msg.String()
	var a keymap.Action
	if m.controller.Dragging() {
		a = m.keys.ResolveScrubbing(key)
	} else {
		a = m.keys.Resolve(key)
	}

	_, cmd := handler.Chain(a,
		m.handleScrubKeys,
		m.handlePlayerKeys,
		m.handleGlobalKeys,
		m.handlePageKeys,
	)
	return cmd
}

// handleSearchInput owns the keyboard while the Discover input is focused.
func (m *Model) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEsc:
		m.discover.input.Blur()
		m.discover.results.SetFocused(true)
		return nil
	case tea.KeyEnter:
		query := strings.TrimSpace(m.discover.input.Value())
		if query == "" {
			return nil
		}
		m.discover.input.Blur()
		m.discover.results.SetQuery(discoverTitle(query), query)
		m.discover.results.Load(m.runner, m.searcher)
		m.discover.results.SetFocused(true)
		return nil
	}
	var cmd tea.Cmd
	m.discover.input, cmd = m.discover.input.Update(msg)
	return cmd
}

func (m *Model) handleScrubKeys(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionDragRelease:
		m.controller.EndDrag()
	case keymap.ActionDragForward:
		m.controller.DragBy(seekStep)
	case keymap.ActionDragBack:
		m.controller.DragBy(-seekStep)
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

// handlePlayerKeys claims player keys only while a track is shown.
func (m *Model) handlePlayerKeys(a keymap.Action) handler.Result {
	if m.controller.State().Phase == playback.PhaseIdle {
		return handler.NotHandled
	}
	switch a {
	case keymap.ActionPlayPause:
		m.controller.Toggle()
	case keymap.ActionSeekForward:
		m.controller.SeekBy(seekStep)
	case keymap.ActionSeekBack:
		m.controller.SeekBy(-seekStep)
	case keymap.ActionTogglePlayerDisplay:
		m.controller.ToggleDisplayMode()
	case keymap.ActionClosePlayer:
		m.controller.Close()
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) handleGlobalKeys(a keymap.Action) handler.Result {
	switch a {
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
		return handler.HandledNoCmd
	case keymap.ActionNextPage:
		return handler.Handled(m.switchTab(m.Active.Next()))
	case keymap.ActionPrevPage:
		return handler.Handled(m.switchTab(m.Active.Prev()))
	case keymap.ActionFocusSearch:
		m.switchTab(sidebar.TabDiscover)
		return handler.Handled(m.focusSearch())
	case keymap.ActionRecognize:
		m.switchTab(sidebar.TabRecognize)
		m.startRecognition()
		return handler.HandledNoCmd
	}
	if t, ok := pageTabs[a]; ok {
		return handler.Handled(m.switchTab(t))
	}
	return handler.NotHandled
}

var pageTabs = map[keymap.Action]sidebar.Tab{
	keymap.ActionPageHome:      sidebar.TabHome,
	keymap.ActionPageDiscover:  sidebar.TabDiscover,
	keymap.ActionPageRecognize: sidebar.TabRecognize,
	keymap.ActionPageArtist:    sidebar.TabArtist,
	keymap.ActionPageRecent:    sidebar.TabRecent,
	keymap.ActionPageMost:      sidebar.TabMost,
	keymap.ActionPageAbout:     sidebar.TabAbout,
}

func (m *Model) handlePageKeys(a keymap.Action) handler.Result {
	switch m.Active {
	case sidebar.TabHome:
		return handler.Handled(m.home.Handle(a))
	case sidebar.TabDiscover:
		_, cmd := m.discover.results.Handle(a)
		return handler.Handled(cmd)
	case sidebar.TabRecognize:
		if a == keymap.ActionSelect {
			m.startRecognition()
		}
	case sidebar.TabArtist:
		return handler.Handled(m.handleArtistKeys(a))
	case sidebar.TabRecent:
		m.handleHistoryKeys(&m.recent, a)
	case sidebar.TabMost:
		m.handleHistoryKeys(&m.most, a)
	}
	return handler.HandledNoCmd
}

func (m *Model) handleArtistKeys(a keymap.Action) tea.Cmd {
	p := &m.artist
	var (
		action list.Action
		cmd    tea.Cmd
	)
	switch p.focus {
	case sectionVideos:
		action, cmd = p.videos.Handle(a)
	case sectionTop:
		r := p.top.Handle(a)
		action = r.Action
		if r.Action == list.ActionSelect {
			if t, ok := p.top.Selected(); ok {
				m.searchAndPlay(sidebar.TabArtist, t.Name+" "+p.name)
			}
		}
	case sectionSimilar:
		r := p.similar.Handle(a)
		action = r.Action
		if r.Action == list.ActionSelect {
			if s, ok := p.similar.Selected(); ok {
				m.loadArtist(s.Name)
			}
		}
	}

	switch action {
	case list.ActionLeaveBottom:
		p.step(1)
	case list.ActionLeaveTop:
		p.step(-1)
	}
	return cmd
}

func (m *Model) handleHistoryKeys(p *historyPage, a keymap.Action) {
	r := p.list.Handle(a)
	if r.Action != list.ActionSelect {
		return
	}
	if e, ok := p.list.Selected(); ok {
		m.controller.Request(e.Track)
	}
}

// switchTab shows page t and moves keyboard focus into it.
func (m *Model) switchTab(t sidebar.Tab) tea.Cmd {
	if !t.Valid() {
		return nil
	}
	m.Active = t
	m.home.SetFocused(t == sidebar.TabHome)
	m.discover.results.SetFocused(t == sidebar.TabDiscover)
	m.artist.setFocused(t == sidebar.TabArtist)
	m.recent.list.SetFocused(t == sidebar.TabRecent)
	m.most.list.SetFocused(t == sidebar.TabMost)
	if t != sidebar.TabDiscover {
		m.discover.input.Blur()
	}

	switch t {
	case sidebar.TabDiscover:
		if m.discover.results.Query() == "" {
			return m.focusSearch()
		}
	case sidebar.TabArtist:
		m.followArtist()
	case sidebar.TabRecent:
		m.recent.refresh(m.history)
	case sidebar.TabMost:
		m.most.refresh(m.history)
	}
	return nil
}

func (m *Model) focusSearch() tea.Cmd {
	m.discover.results.SetFocused(false)
	return tea.Batch(m.discover.input.Focus(), textinput.Blink)
}

// handleMouse switches pages from the sidebar, scrubs with the progress
// bar, starts a recognition from a click on the Recognize page and scrolls
// the page with the wheel.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.controller.Dragging() {
		switch msg.Action {
		case tea.MouseActionMotion:
			if pos, ok := m.barPosition(msg.X); ok {
				m.controller.DragTo(pos)
			}
			return nil
		case tea.MouseActionRelease:
			if pos, ok := m.barPosition(msg.X); ok {
				m.controller.DragTo(pos)
			}
			m.controller.EndDrag()
			return nil
		}
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.handlePageKeys(keymap.ActionMoveUp).Cmd
	case tea.MouseButtonWheelDown:
		return m.handlePageKeys(keymap.ActionMoveDown).Cmd
	case tea.MouseButtonLeft:
	default:
		return nil
	}
	if msg.Action != tea.MouseActionPress {
		return nil
	}

	if row := layout.PlayerBarRow(m.height, playerbar.Height(m.playerState())); row >= 0 && msg.Y >= row {
		if msg.Y == row+1 {
			if pos, ok := m.barPosition(msg.X); ok {
				m.controller.BeginDrag(pos)
			}
		}
		return nil
	}
	if msg.X < sidebar.Width {
		if t, ok := sidebar.TabAt(msg.Y); ok {
			return m.switchTab(t)
		}
		return nil
	}
	if m.Active == sidebar.TabRecognize && msg.Y >= headerbar.Height {
		m.startRecognition()
	}
	return nil
}

// barPosition maps column x of the progress bar to a track position. ok is
// false when x is off the bar and no scrub is in progress.
func (m Model) barPosition(x int) (time.Duration, bool) {
	bar := m.playerState()
	start, width, ok := playerbar.ProgressBounds(bar, m.width)
	if !ok {
		return 0, false
	}
	if !m.controller.Dragging() && (x < start || x >= start+width) {
		return 0, false
	}
	return playerbar.PositionAt(x-start, width, bar.Duration), true
}
