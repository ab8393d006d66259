// Package shelf provides the track list shown on the Home, Discover and
// Artist pages. A shelf is parametrised by a search query; its results are
// fetched through the task runner and addressed by (shelf, generation, index)
// so that a reload invalidates every pending selection.
package shelf

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/keymap"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/thumbnail"
	"github.com/llehouerou/hifi/internal/ui/list"
)

// TaskName is the runner task name for shelf searches.
const TaskName = "search"

// Searcher runs a text query against the video catalog.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]playback.Track, error)
}

// Params configure a shelf.
type Params struct {
	Title      string
	Query      string
	Fetch      int // results requested
	Skip       int // leading results dropped
	Show       int // rows shown before "Show more", 0 shows everything
	EmptyLabel string
	FailLabel  string

	// Art fetches row thumbnails. Rows keep a placeholder when nil.
	Art thumbnail.Fetcher
}

// Status is the load state of a shelf.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

// LoadedMsg carries search results for a shelf generation.
type LoadedMsg struct {
	Shelf      int
	Generation uint64
	Tracks     []playback.Track
}

// FailedMsg reports a failed search for a shelf generation.
type FailedMsg struct {
	Shelf      int
	Generation uint64
	Err        *apperr.Error
}

// PlayMsg asks the app to play a row. Resolve it with Track.
type PlayMsg struct {
	Shelf      int
	Generation uint64
	Index      int
}

// Model is one track list.
type Model struct {
	id       int
	params   Params
	gen      uint64
	status   Status
	tracks   []playback.Track
	expanded bool
	err      *apperr.Error

	art    []artwork // parallel to tracks
	runner *task.Runner

	list          list.Model[playback.Track]
	handle        *task.Handle
	width, height int
}

// New creates an idle shelf. id must be unique among live shelves.
func New(id int, p Params) Model {
	if p.EmptyLabel == "" {
		p.EmptyLabel = errmsg.NoResults
	}
	if p.FailLabel == "" {
		p.FailLabel = errmsg.SearchFailed
	}
	return Model{id: id, params: p, list: list.New[playback.Track]()}
}

// ID returns the shelf identifier carried by its messages.
func (m Model) ID() int { return m.id }

// Title returns the heading text.
func (m Model) Title() string { return m.params.Title }

// Query returns the current query.
func (m Model) Query() string { return m.params.Query }

// Status returns the load state.
func (m Model) Status() Status { return m.status }

// Generation returns the current generation, bumped by every Load.
func (m Model) Generation() uint64 { return m.gen }

// Err returns the last failure, nil unless StatusFailed.
func (m Model) Err() *apperr.Error { return m.err }

// Tracks returns all fetched tracks after Skip.
func (m Model) Tracks() []playback.Track { return m.tracks }

// Visible returns the rows currently listed.
func (m Model) Visible() []playback.Track { return m.list.Items() }

// Expanded reports whether "Show more" was used.
func (m Model) Expanded() bool { return m.expanded }

// CanShowMore reports whether hidden rows remain.
func (m Model) CanShowMore() bool {
	return !m.expanded && m.params.Show > 0 && len(m.tracks) > m.params.Show
}

// Loading reports whether a search is in flight.
func (m Model) Loading() bool { return m.status == StatusLoading }

// SetQuery replaces the query and heading. Call Load to fetch.
func (m *Model) SetQuery(title, query string) {
	m.params.Title = title
	m.params.Query = query
}

// Load cancels any in-flight search and starts a new generation. An empty
// query settles immediately with no rows and no task.
func (m *Model) Load(r *task.Runner, s Searcher) {
	m.Cancel(r)
	m.runner = r
	m.gen++
	m.err = nil
	m.setTracks(nil)

	query := strings.TrimSpace(m.params.Query)
	if query == "" {
		m.status = StatusReady
		return
	}
	m.status = StatusLoading

	id, gen, fetch, skip := m.id, m.gen, m.params.Fetch, m.params.Skip
	m.handle = r.Run(TaskName, func(ctx context.Context) (any, error) {
		tracks, err := s.Search(ctx, query, fetch)
		if err != nil {
			return nil, err
		}
		if skip >= len(tracks) {
			return []playback.Track(nil), nil
		}
		return tracks[skip:], nil
	}, task.Callbacks{
		OnSuccess: func(v any) tea.Msg {
			tracks, _ := v.([]playback.Track)
			return LoadedMsg{Shelf: id, Generation: gen, Tracks: tracks}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			return FailedMsg{Shelf: id, Generation: gen, Err: err}
		},
	}, task.WithLabel(label(m.params.Title, query)))
}

func label(title, query string) string {
	if title == "" {
		return "Searching '" + query + "'"
	}
	return "Loading " + title
}

// Cancel stops an in-flight search and pending thumbnails. Their results
// will never be delivered.
func (m *Model) Cancel(r *task.Runner) {
	for i := range m.art {
		a := &m.art[i]
		if a.handle != nil {
			r.Cancel(a.handle)
			a.handle = nil
			a.status = ArtNone
		}
	}
	if m.handle == nil {
		return
	}
	r.Cancel(m.handle)
	m.handle = nil
	if m.status == StatusLoading {
		m.status = StatusIdle
	}
}

// Update applies load and thumbnail results addressed to this shelf. It
// reports whether msg belonged to the shelf; results for an older
// generation are consumed and dropped.
func (m *Model) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Shelf != m.id {
			return false
		}
		if msg.Generation == m.gen {
			m.handle = nil
			m.status = StatusReady
			m.setTracks(msg.Tracks)
			m.fetchArt()
		}
		return true
	case FailedMsg:
		if msg.Shelf != m.id {
			return false
		}
		if msg.Generation == m.gen {
			m.handle = nil
			m.status = StatusFailed
			m.err = msg.Err
			m.setTracks(nil)
		}
		return true
	case ArtMsg:
		if msg.Shelf != m.id {
			return false
		}
		m.updateArt(msg.Generation, msg.Index, func(a *artwork) {
			a.status = ArtReady
			a.data = msg.Data
			a.swatch = msg.Swatch
		})
		return true
	case ArtFailedMsg:
		if msg.Shelf != m.id {
			return false
		}
		m.updateArt(msg.Generation, msg.Index, func(a *artwork) {
			a.status = ArtMissing
		})
		return true
	}
	return false
}

func (m *Model) setTracks(tracks []playback.Track) {
	m.tracks = tracks
	m.art = make([]artwork, len(tracks))
	m.expanded = false
	m.list.SetItems(m.visible())
	m.list.SelectFirst()
	m.layout()
}

func (m Model) visible() []playback.Track {
	if m.CanShowMore() {
		return m.tracks[:m.params.Show]
	}
	return m.tracks
}

// ShowMore reveals every fetched row. It reports whether anything changed.
func (m *Model) ShowMore() bool {
	if !m.CanShowMore() {
		return false
	}
	m.expanded = true
	m.list.SetItems(m.tracks)
	m.layout()
	m.fetchArt()
	return true
}

// Track resolves an indexed selection. It fails when the shelf has been
// reloaded since the selection was made.
func (m Model) Track(gen uint64, index int) (playback.Track, bool) {
	if gen != m.gen || index < 0 || index >= len(m.tracks) {
		return playback.Track{}, false
	}
	return m.tracks[index], true
}

// Play returns the selection message for row index.
func (m Model) Play(index int) tea.Cmd {
	msg := PlayMsg{Shelf: m.id, Generation: m.gen, Index: index}
	return func() tea.Msg { return msg }
}

// Handle applies a keymap action. Selecting a row returns a command
// producing a PlayMsg.
func (m *Model) Handle(a keymap.Action) (list.Action, tea.Cmd) {
	if a == keymap.ActionShowMore {
		if m.list.IsFocused() && m.ShowMore() {
			return list.ActionMoved, nil
		}
		return list.ActionNone, nil
	}
	res := m.list.Handle(a)
	if res.Action == list.ActionSelect {
		return res.Action, m.Play(res.Index)
	}
	return res.Action, nil
}

// SetFocused sets whether the shelf receives navigation.
func (m *Model) SetFocused(focused bool) { m.list.SetFocused(focused) }

// IsFocused reports whether the shelf receives navigation.
func (m Model) IsFocused() bool { return m.list.IsFocused() }

// SelectFirst selects the first row.
func (m *Model) SelectFirst() { m.list.SelectFirst() }

// SelectLast selects the last row.
func (m *Model) SelectLast() { m.list.SelectLast() }

// SelectedIndex returns the selected row, -1 when empty.
func (m Model) SelectedIndex() int { return m.list.SelectedIndex() }
