package shelf

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/thumbnail"
)

// ArtTaskName is the runner task name for row thumbnails.
const ArtTaskName = thumbnail.TaskName

// ArtStatus is the thumbnail state of one row.
type ArtStatus int

const (
	ArtNone ArtStatus = iota // not requested
	ArtPending
	ArtReady
	ArtMissing // fetch failed, the placeholder stays
)

// ArtMsg carries the thumbnail of one row.
type ArtMsg struct {
	Shelf      int
	Generation uint64
	Index      int
	Data       []byte
	Swatch     string
}

// ArtFailedMsg reports a row thumbnail that could not be fetched.
type ArtFailedMsg struct {
	Shelf      int
	Generation uint64
	Index      int
	Err        *apperr.Error
}

type artwork struct {
	status ArtStatus
	data   []byte
	swatch string
	handle *task.Handle
}

type fetched struct {
	data   []byte
	swatch string
}

// Art returns the thumbnail state of row index. data is the PNG when
// status is ArtReady.
func (m Model) Art(index int) (ArtStatus, []byte) {
	if index < 0 || index >= len(m.art) {
		return ArtNone, nil
	}
	return m.art[index].status, m.art[index].data
}

// fetchArt starts a thumbnail fetch for every listed row that has none.
func (m *Model) fetchArt() {
	if m.params.Art == nil || m.runner == nil {
		return
	}
	for i, t := range m.list.Items() {
		if m.art[i].status != ArtNone || t.ThumbnailURL == "" {
			continue
		}
		m.art[i].status = ArtPending
		m.art[i].handle = m.runArt(i, t.ThumbnailURL)
	}
}

func (m *Model) runArt(index int, url string) *task.Handle {
	id, gen, f := m.id, m.gen, m.params.Art
	return m.runner.Run(ArtTaskName, func(ctx context.Context) (any, error) {
		data, err := f.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		swatch, err := thumbnail.Swatch(data)
		if err != nil {
			return nil, err
		}
		return fetched{data: data, swatch: swatch}, nil
	}, task.Callbacks{
		OnSuccess: func(v any) tea.Msg {
			r, _ := v.(fetched)
			return ArtMsg{Shelf: id, Generation: gen, Index: index, Data: r.data, Swatch: r.swatch}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			return ArtFailedMsg{Shelf: id, Generation: gen, Index: index, Err: err}
		},
	}, task.WithLabel("Fetching artwork"))
}

// updateArt applies a row thumbnail result of the current generation.
func (m *Model) updateArt(gen uint64, index int, apply func(a *artwork)) {
	if gen != m.gen || index < 0 || index >= len(m.art) {
		return
	}
	a := &m.art[index]
	a.handle = nil
	apply(a)
}
