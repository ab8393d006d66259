package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/mpris"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/ui/shelf"
	"github.com/llehouerou/hifi/internal/ui/sidebar"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case task.OutcomeMsg:
		cmds = append(cmds, m.runner.WaitCmd())
		if out := m.runner.Deliver(msg); out != nil {
			cmds = append(cmds, m.handleResult(out))
		}

	case mpris.CommandMsg:
		m.handleCommand(msg)
		if m.commands != nil {
			cmds = append(cmds, m.commands.WaitCmd())
		}

	case TickMsg:
		m.controller.Tick()
		cmds = append(cmds, TickCmd(m.tickInterval))

	case FrameMsg:
		cmds = append(cmds, m.handleFrame())

	case spinner.TickMsg:
		cmds = append(cmds, m.handleSpinner(msg))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	default:
		cmds = append(cmds, m.handleResult(msg))
	}

	cmds = append(cmds, m.settle()...)
	return m, tea.Batch(cmds...)
}

// handleResult routes task results and page messages.
func (m *Model) handleResult(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case playback.ResolvedMsg, playback.ResolveFailedMsg:
		before := m.controller.State().Phase
		m.controller.Update(msg)
		s := m.controller.State()
		if before == playback.PhaseLoading && s.Phase == playback.PhasePlaying && s.Track != nil {
			m.history.Record(*s.Track)
			m.recent.refresh(m.history)
			m.most.refresh(m.history)
		}

	case shelf.LoadedMsg, shelf.FailedMsg, shelf.ArtMsg, shelf.ArtFailedMsg:
		m.updateShelves(msg)

	case shelf.PlayMsg:
		m.handlePlay(msg)

	case ThumbnailMsg:
		if msg.TrackID == m.thumb.trackID {
			m.thumb.data = msg.Data
			m.thumb.handle = nil
		}

	case ThumbnailFailedMsg:
		if msg.TrackID == m.thumb.trackID {
			m.thumb.handle = nil
			m.log.Debug("thumbnail unavailable", "id", msg.TrackID, "err", msg.Err)
		}

	case RecognizedMsg:
		m.recognize.handle = nil
		m.recognize.status = recognizeRecognized
		m.recognize.result = msg.Result
		if m.announcer != nil {
			m.announcer.Recognized(msg.Result)
		}
		m.searchAndPlay(sidebar.TabRecognize, msg.Result.Title)

	case RecognizeFailedMsg:
		m.recognize.handle = nil
		if msg.Err != nil && msg.Err.Kind == apperr.KindNotFound {
			m.recognize.status = recognizeNotFound
		} else {
			m.recognize.status = recognizeFailed
			m.log.Warn("recognition failed", "err", msg.Err)
		}

	case PlayFoundMsg:
		if msg.Request == m.play.seq {
			m.play.handle = nil
			m.controller.Request(msg.Track)
		}

	case PlayNotFoundMsg:
		if msg.Request == m.play.seq {
			m.play.handle = nil
			m.play.err = errmsg.PlayFailed
			m.log.Info("search and play found nothing", "query", m.play.query, "err", msg.Err)
		}

	case ArtistLoadedMsg:
		if msg.Name == m.artist.name {
			m.artist.apply(msg.Info)
		}

	case ArtistFailedMsg:
		if msg.Name == m.artist.name {
			m.artist.fail(msg.Err)
			m.log.Warn("artist lookup failed", "artist", msg.Name, "err", msg.Err)
		}
	}
	return nil
}

// updateShelves hands a shelf result to the shelf that owns it.
func (m *Model) updateShelves(msg tea.Msg) {
	switch {
	case m.home.Update(msg):
	case m.discover.results.Update(msg):
	case m.artist.videos.Update(msg):
	}
}

func (m *Model) shelfFor(id int) *shelf.Model {
	switch id {
	case discoverShelfID:
		return &m.discover.results
	case artistShelfID:
		return &m.artist.videos
	}
	return m.home.Shelf(id)
}

// handlePlay resolves an indexed play request against its shelf. Requests
// for a shelf that reloaded since are dropped. A row thumbnail that already
// arrived becomes the player bar thumbnail.
func (m *Model) handlePlay(msg shelf.PlayMsg) {
	s := m.shelfFor(msg.Shelf)
	if s == nil {
		m.log.Debug("play request for unknown shelf", "shelf", msg.Shelf)
		return
	}
	t, ok := s.Track(msg.Generation, msg.Index)
	if !ok {
		m.log.Debug("stale play request dropped", "shelf", msg.Shelf, "index", msg.Index)
		return
	}
	if st, data := s.Art(msg.Index); st == shelf.ArtReady {
		m.useThumbnail(t.ID, data)
	}
	m.controller.Request(t)
}

// handleCommand applies a media key or desktop control request.
func (m *Model) handleCommand(msg mpris.CommandMsg) {
	phase := m.controller.State().Phase
	switch msg.Action {
	case mpris.ActionPlayPause:
		m.controller.Toggle()
	case mpris.ActionPlay:
		if phase == playback.PhasePaused {
			m.controller.Toggle()
		}
	case mpris.ActionPause:
		if phase == playback.PhasePlaying {
			m.controller.Toggle()
		}
	case mpris.ActionStop:
		m.controller.Close()
	case mpris.ActionSeek:
		m.controller.SeekBy(msg.Offset)
	case mpris.ActionSetPosition:
		m.controller.Seek(msg.Position)
	}
}

func (m *Model) handleFrame() tea.Cmd {
	s := m.controller.State()
	if s.Mode != playback.DisplayExpanded || s.Phase != playback.PhasePlaying {
		m.animating = false
		return nil
	}
	m.frame += 0.04
	if m.frame >= 1 {
		m.frame--
	}
	return FrameCmd()
}

func (m *Model) handleSpinner(msg spinner.TickMsg) tea.Cmd {
	if !m.busy() {
		m.spinning = false
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

// busy reports whether anything on screen shows the spinner.
func (m Model) busy() bool {
	return m.runner.Len() > 0 ||
		m.controller.State().Phase == playback.PhaseLoading ||
		m.recognize.status == recognizeListening
}

// settle brings derived state in line with the controller after every
// message: the thumbnail follows the current track, the Artist page follows
// the player, and the spinner and animation loops restart when needed.
func (m *Model) settle() []tea.Cmd {
	var cmds []tea.Cmd
	s := m.controller.State()

	switch {
	case s.Track == nil && m.thumb.trackID != "":
		m.runner.Cancel(m.thumb.handle)
		m.thumb = thumbState{}
	case s.Track != nil && s.Track.ID != m.thumb.trackID:
		m.startThumbnail(*s.Track)
	}

	if m.Active == sidebar.TabArtist {
		m.followArtist()
	}

	if !m.spinning && m.busy() {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	if !m.animating && s.Mode == playback.DisplayExpanded && s.Phase == playback.PhasePlaying {
		m.animating = true
		cmds = append(cmds, FrameCmd())
	}

	m.layout()
	return cmds
}

// followArtist loads the artist of the current track when it changed since
// the page last followed the player. An artist picked by hand stays until
// the player moves on.
func (m *Model) followArtist() {
	s := m.controller.State()
	if s.Track == nil || s.Track.Artist == "" || s.Track.Artist == m.artist.followed {
		return
	}
	m.artist.followed = s.Track.Artist
	m.loadArtist(s.Track.Artist)
}
