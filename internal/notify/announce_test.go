package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/player"
	"github.com/llehouerou/hifi/internal/recognize"
	"github.com/llehouerou/hifi/internal/task"
)

type recordingNotifier struct {
	mu     sync.Mutex
	sent   []Notification
	nextID uint32
	err    error
}

func (r *recordingNotifier) Notify(n Notification) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.nextID++
	return r.nextID, nil
}

func (r *recordingNotifier) Close(uint32) error { return nil }

func (r *recordingNotifier) notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.sent...)
}

func TestRecognizedNotification(t *testing.T) {
	n := RecognizedNotification(recognize.Result{Title: "Pasoori", Artist: "Ali Sethi", Album: "CS14"})
	assert.Equal(t, "Song recognized: Pasoori", n.Title)
	assert.Equal(t, "Ali Sethi - CS14", n.Body)

	n = RecognizedNotification(recognize.Result{Title: "Pasoori", Artist: "Ali Sethi"})
	assert.Equal(t, "Ali Sethi", n.Body)
}

func TestAnnouncer_NowPlayingReplaces(t *testing.T) {
	rec := &recordingNotifier{}
	a := NewAnnouncer(rec, nil)

	a.NowPlaying(playback.Track{ID: "1", Title: "One", Artist: "A"})
	a.NowPlaying(playback.Track{ID: "2", Title: "Two", Artist: "B"})

	sent := rec.notifications()
	require.Len(t, sent, 2)
	assert.Equal(t, uint32(0), sent[0].ReplacesID)
	assert.Equal(t, uint32(1), sent[1].ReplacesID)
	assert.Equal(t, "Two", sent[1].Title)
}

func TestAnnouncer_ErrorsAreSwallowed(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("no bus")}
	a := NewAnnouncer(rec, nil)

	assert.NotPanics(t, func() {
		a.NowPlaying(playback.Track{ID: "1"})
		a.Recognized(recognize.Result{Title: "x"})
	})
}

type staticResolver struct{}

func (staticResolver) Resolve(_ context.Context, id string) (string, error) {
	return "https://stream/" + id, nil
}

func TestAnnouncer_Watch(t *testing.T) {
	runner := task.NewRunner(nil)
	t.Cleanup(runner.Close)
	mock := player.NewMock()
	ctrl := playback.New(mock, staticResolver{}, runner, nil)

	rec := &recordingNotifier{}
	NewAnnouncer(rec, nil).Watch(ctrl)

	ctrl.Request(playback.Track{ID: "abc", Title: "Pasoori", Artist: "Ali Sethi"})
	out, ok := runner.WaitCmd()().(task.OutcomeMsg)
	require.True(t, ok)
	ctrl.Update(runner.Deliver(out))
	require.Equal(t, playback.PhasePlaying, ctrl.State().Phase)

	assert.Eventually(t, func() bool { return len(rec.notifications()) == 1 }, time.Second, 5*time.Millisecond)

	// Pause and resume is not a new track.
	ctrl.Toggle()
	ctrl.Toggle()
	require.NoError(t, ctrl.Shutdown())

	sent := rec.notifications()
	require.Len(t, sent, 1)
	assert.Equal(t, "Pasoori", sent[0].Title)
	assert.Equal(t, "Ali Sethi", sent[0].Body)
}

func playbackTrack(title, artist string) playback.Track {
	return playback.Track{ID: title, Title: title, Artist: artist}
}
