package shelf

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/keymap"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/ui/list"
	"github.com/llehouerou/hifi/internal/ui/testutil"
)

type searchCall struct {
	query string
	limit int
}

type fakeSearcher struct {
	mu    sync.Mutex
	calls []searchCall
	err   error
	block map[string]bool // queries that wait for cancellation
}

func (f *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]playback.Track, error) {
	f.mu.Lock()
	f.calls = append(f.calls, searchCall{query: query, limit: limit})
	block := f.block[query]
	err := f.err
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	tracks := make([]playback.Track, limit)
	for i := range tracks {
		tracks[i] = playback.Track{
			ID:     fmt.Sprintf("%s-%d", query, i),
			Title:        fmt.Sprintf("%s song %d", query, i),
			Artist:       "Artist",
			ThumbnailURL: fmt.Sprintf("https://img.example/%s/%d", query, i),
		}
	}
	return tracks, nil
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newRunner(t *testing.T) *task.Runner {
	t.Helper()
	r := task.NewRunner(nil)
	t.Cleanup(r.Close)
	return r
}

// deliver waits for the next outcome and returns the callback message.
func deliver(t *testing.T, r *task.Runner) tea.Msg {
	t.Helper()
	msg := r.WaitCmd()()
	out, ok := msg.(task.OutcomeMsg)
	require.True(t, ok, "expected OutcomeMsg, got %T", msg)
	return r.Deliver(out)
}

func weekly() Params {
	return Params{Title: "Weekly Top Songs", Query: "Coke Studio", Fetch: 10, Skip: 2, Show: 5, FailLabel: errmsg.NoPlaylist}
}

func TestLoad_AppliesSkipAndShow(t *testing.T) {
	r := newRunner(t)
	s := &fakeSearcher{}
	m := New(1, weekly())

	m.Load(r, s)
	assert.True(t, m.Loading())
	assert.Equal(t, 1, r.Len())

	require.True(t, m.Update(deliver(t, r)))
	assert.Equal(t, StatusReady, m.Status())
	assert.Equal(t, []searchCall{{query: "Coke Studio", limit: 10}}, s.calls)

	require.Len(t, m.Tracks(), 8)
	assert.Equal(t, "Coke Studio-2", m.Tracks()[0].ID)
	assert.Len(t, m.Visible(), 5)
	assert.True(t, m.CanShowMore())

	assert.True(t, m.ShowMore())
	assert.Len(t, m.Visible(), 8)
	assert.True(t, m.Expanded())
	assert.False(t, m.CanShowMore())
	assert.False(t, m.ShowMore())
}

func TestLoad_SkipPastResults(t *testing.T) {
	r := newRunner(t)
	m := New(1, Params{Title: "Few", Query: "few", Fetch: 2, Skip: 2})

	m.Load(r, &fakeSearcher{})
	require.True(t, m.Update(deliver(t, r)))

	assert.Equal(t, StatusReady, m.Status())
	assert.Empty(t, m.Tracks())
}

func TestLoad_EmptyQueryStartsNoTask(t *testing.T) {
	r := newRunner(t)
	s := &fakeSearcher{}
	m := New(2, Params{Query: "   ", Fetch: 5})
	m.SetSize(60, 6)

	m.Load(r, s)

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, s.callCount())
	assert.Equal(t, StatusReady, m.Status())
	assert.Contains(t, testutil.StripANSI(m.View("", "")), errmsg.NoResults)
}

func TestLoad_FailureShowsLabel(t *testing.T) {
	r := newRunner(t)
	s := &fakeSearcher{err: fmt.Errorf("yt-dlp: %w", apperr.ErrNetwork)}
	m := New(1, weekly())
	m.SetSize(60, 8)

	m.Load(r, s)
	require.True(t, m.Update(deliver(t, r)))

	assert.Equal(t, StatusFailed, m.Status())
	require.NotNil(t, m.Err())
	assert.Equal(t, apperr.KindNetwork, m.Err().Kind)
	assert.Contains(t, testutil.StripANSI(m.View("", "")), "No Playlist Found")
}

func TestLoad_DefaultLabels(t *testing.T) {
	r := newRunner(t)
	m := New(3, Params{Title: "Results for 'x'", Query: "x", Fetch: 5})
	m.SetSize(60, 8)

	m.Load(r, &fakeSearcher{err: apperr.ErrNetwork})
	m.Update(deliver(t, r))

	assert.Contains(t, testutil.StripANSI(m.View("", "")), errmsg.SearchFailed)
}

func TestReload_CancelsPreviousSearch(t *testing.T) {
	r := newRunner(t)
	s := &fakeSearcher{block: map[string]bool{"slow": true}}
	m := New(1, Params{Title: "Discover", Query: "slow", Fetch: 5})

	m.Load(r, s)
	staleGen := m.Generation()

	m.SetQuery("Results for 'fast'", "fast")
	m.Load(r, s)
	assert.Equal(t, staleGen+1, m.Generation())

	// The cancelled search is discarded; only the second one is delivered.
	loaded, ok := deliver(t, r).(LoadedMsg)
	require.True(t, ok)
	assert.Equal(t, m.Generation(), loaded.Generation)

	require.True(t, m.Update(loaded))
	assert.Equal(t, "fast-0", m.Tracks()[0].ID)

	_, ok = m.Track(staleGen, 0)
	assert.False(t, ok, "selection from a previous generation must not resolve")
}

func TestUpdate_StaleGenerationConsumedAndIgnored(t *testing.T) {
	m := New(1, weekly())
	m.gen = 3

	consumed := m.Update(LoadedMsg{Shelf: 1, Generation: 2, Tracks: []playback.Track{{ID: "old"}}})
	assert.True(t, consumed)
	assert.Empty(t, m.Tracks())

	consumed = m.Update(FailedMsg{Shelf: 1, Generation: 2, Err: apperr.New(TaskName, apperr.ErrNetwork)})
	assert.True(t, consumed)
	assert.NotEqual(t, StatusFailed, m.Status())
}

func TestUpdate_OtherShelfNotConsumed(t *testing.T) {
	m := New(1, weekly())
	assert.False(t, m.Update(LoadedMsg{Shelf: 2}))
	assert.False(t, m.Update(FailedMsg{Shelf: 2}))
	assert.False(t, m.Update(tea.WindowSizeMsg{}))
}

func TestHandle_SelectDispatchesIndexedPlay(t *testing.T) {
	r := newRunner(t)
	m := New(7, weekly())
	m.SetSize(60, 10)
	m.SetFocused(true)
	m.Load(r, &fakeSearcher{})
	m.Update(deliver(t, r))

	action, cmd := m.Handle(keymap.ActionMoveDown)
	assert.Equal(t, list.ActionMoved, action)
	assert.Nil(t, cmd)

	action, cmd = m.Handle(keymap.ActionSelect)
	assert.Equal(t, list.ActionSelect, action)
	require.NotNil(t, cmd)

	msg, ok := cmd().(PlayMsg)
	require.True(t, ok)
	assert.Equal(t, PlayMsg{Shelf: 7, Generation: m.Generation(), Index: 1}, msg)

	tr, ok := m.Track(msg.Generation, msg.Index)
	require.True(t, ok)
	assert.Equal(t, "Coke Studio-3", tr.ID)
}

func TestHandle_ShowMoreNeedsFocus(t *testing.T) {
	r := newRunner(t)
	m := New(1, weekly())
	m.Load(r, &fakeSearcher{})
	m.Update(deliver(t, r))

	action, _ := m.Handle(keymap.ActionShowMore)
	assert.Equal(t, list.ActionNone, action)
	assert.False(t, m.Expanded())

	m.SetFocused(true)
	action, _ = m.Handle(keymap.ActionShowMore)
	assert.Equal(t, list.ActionMoved, action)
	assert.True(t, m.Expanded())
}

func TestTrack_OutOfRange(t *testing.T) {
	m := New(1, weekly())
	_, ok := m.Track(m.Generation(), 0)
	assert.False(t, ok)
	_, ok = m.Track(m.Generation(), -1)
	assert.False(t, ok)
}

func TestCancel_ReturnsToIdle(t *testing.T) {
	r := newRunner(t)
	s := &fakeSearcher{block: map[string]bool{"Coke Studio": true}}
	m := New(1, weekly())

	m.Load(r, s)
	m.Cancel(r)

	assert.Equal(t, StatusIdle, m.Status())
	assert.Equal(t, 0, r.Len())
	assert.True(t, r.Drain(time.Second))
}
