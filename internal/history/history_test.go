package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/hifi/internal/playback"
)

func track(id string) playback.Track {
	return playback.Track{ID: id, Title: "Title " + id, Artist: "Artist " + id, StreamURL: "https://stream/" + id}
}

func newTestHistory() (*History, *time.Time) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	h := New()
	h.now = func() time.Time { return now }
	return h, &now
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Track.ID
	}
	return out
}

func TestRecord_CountsAndDropsStream(t *testing.T) {
	h, _ := newTestHistory()
	h.Record(track("a"))
	h.Record(track("a"))

	require.Equal(t, 1, h.Len())
	e := h.Recent(0)[0]
	assert.Equal(t, 2, e.Plays)
	assert.Empty(t, e.Track.StreamURL)
}

func TestRecent_MostRecentFirst(t *testing.T) {
	h, now := newTestHistory()
	for _, id := range []string{"a", "b", "c"} {
		h.Record(track(id))
		*now = now.Add(time.Minute)
	}
	h.Record(track("a"))

	assert.Equal(t, []string{"a", "c", "b"}, ids(h.Recent(0)))
	assert.Equal(t, []string{"a", "c"}, ids(h.Recent(2)))
}

func TestMost_ByPlaysThenRecency(t *testing.T) {
	h, _ := newTestHistory()
	h.Record(track("a"))
	h.Record(track("b"))
	h.Record(track("b"))
	h.Record(track("c"))
	h.Record(track("d"))

	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(h.Most(0)))
	assert.Equal(t, []string{"b"}, ids(h.Most(1)))
}

func TestRecord_EvictsLeastRecent(t *testing.T) {
	h, _ := newTestHistory()
	for i := range MaxEntries + 1 {
		h.Record(track(fmt.Sprint(i)))
	}

	assert.Equal(t, MaxEntries, h.Len())
	recent := h.Recent(0)
	assert.Equal(t, fmt.Sprint(MaxEntries), recent[0].Track.ID)
	assert.Equal(t, "1", recent[len(recent)-1].Track.ID)
}

func TestEntry_PlayedAgo(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"just now", 0, "just now"},
		{"minutes", 3 * time.Minute, "3 minutes ago"},
		{"hours", 2 * time.Hour, "2 hours ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Entry{LastPlayed: now.Add(-tt.ago)}
			assert.Equal(t, tt.want, e.PlayedAgo(now))
		})
	}
}

func TestEntry_PlaysLabel(t *testing.T) {
	assert.Equal(t, "1 play", Entry{Plays: 1}.PlaysLabel())
	assert.Equal(t, "3 plays", Entry{Plays: 3}.PlaysLabel())
	assert.Equal(t, "1,024 plays", Entry{Plays: 1024}.PlaysLabel())
}

func TestSummary(t *testing.T) {
	h, _ := newTestHistory()
	assert.Equal(t, "0 tracks, 0 plays", h.Summary())

	h.Record(track("a"))
	assert.Equal(t, "1 track, 1 play", h.Summary())

	h.Record(track("a"))
	h.Record(track("b"))
	assert.Equal(t, "2 tracks, 3 plays", h.Summary())
}
