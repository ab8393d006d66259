// Package history keeps the session's play history for the Recently Played
// and Most Played pages. Nothing is persisted.
package history

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/hifi/internal/playback"
)

// MaxEntries caps the number of distinct tracks kept.
const MaxEntries = 200

// Entry is one distinct track.
type Entry struct {
	Track      playback.Track
	Plays      int
	LastPlayed time.Time
	seq        uint64
}

// PlayedAgo renders the last play relative to now, e.g. "3 minutes ago".
func (e Entry) PlayedAgo(now time.Time) string {
	if now.Sub(e.LastPlayed) < time.Second {
		return "just now"
	}
	return humanize.RelTime(e.LastPlayed, now, "ago", "from now")
}

// PlaysLabel renders the play count, e.g. "1 play" or "1,024 plays".
func (e Entry) PlaysLabel() string {
	if e.Plays == 1 {
		return "1 play"
	}
	return humanize.Comma(int64(e.Plays)) + " plays"
}

// History records plays. It is owned by the UI goroutine.
type History struct {
	entries map[string]*Entry
	seq     uint64
	now     func() time.Time
}

// New creates an empty history.
func New() *History {
	return &History{entries: make(map[string]*Entry), now: time.Now}
}

// Record counts a play of t. The stream URL is dropped since it expires.
func (h *History) Record(t playback.Track) {
	t.StreamURL = ""
	h.seq++
	e, ok := h.entries[t.ID]
	if !ok {
		e = &Entry{}
		h.entries[t.ID] = e
	}
	e.Track = t
	e.Plays++
	e.LastPlayed = h.now()
	e.seq = h.seq

	if len(h.entries) > MaxEntries {
		h.evictOldest()
	}
}

func (h *History) evictOldest() {
	var oldest *Entry
	for _, e := range h.entries {
		if oldest == nil || e.seq < oldest.seq {
			oldest = e
		}
	}
	delete(h.entries, oldest.Track.ID)
}

// Len returns the number of distinct tracks.
func (h *History) Len() int {
	return len(h.entries)
}

// Recent returns up to limit entries, most recently played first. A limit
// of 0 returns everything.
func (h *History) Recent(limit int) []Entry {
	out := h.snapshot()
	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.seq, a.seq)
	})
	return truncate(out, limit)
}

// Most returns up to limit entries by play count, ties broken by recency.
func (h *History) Most(limit int) []Entry {
	out := h.snapshot()
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Plays, a.Plays); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	return truncate(out, limit)
}

func (h *History) snapshot() []Entry {
	out := make([]Entry, 0, len(h.entries))
	for _, e := range h.entries {
		out = append(out, *e)
	}
	return out
}

func truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// Summary renders a one-line description such as "12 tracks, 30 plays".
func (h *History) Summary() string {
	plays := 0
	for _, e := range h.entries {
		plays += e.Plays
	}
	return plural(len(h.entries), "track") + ", " + plural(plays, "play")
}

func plural(n int, word string) string {
	s := strconv.Itoa(n) + " " + word
	if n != 1 {
		s += "s"
	}
	return s
}
