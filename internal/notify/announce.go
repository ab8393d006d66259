package notify

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/recognize"
)

const (
	appName = "HiFi"

	nowPlayingTimeout int32 = 4000
	recognizedTimeout int32 = 6000
)

// Source is what the announcer needs from the playback controller.
type Source interface {
	State() playback.State
	Subscribe() *playback.Subscription
}

// Announcer turns player and recognition events into notifications.
// Now-playing notifications replace each other.
type Announcer struct {
	n   Notifier
	log *log.Logger

	mu         sync.Mutex
	nowPlaying uint32
}

// NewAnnouncer wraps n. A nil logger discards output.
func NewAnnouncer(n Notifier, logger *log.Logger) *Announcer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Announcer{n: n, log: logger}
}

// NowPlayingNotification describes a track that started playing.
func NowPlayingNotification(t playback.Track) Notification {
	return Notification{
		Title:   t.Title,
		Body:    t.Artist,
		Timeout: nowPlayingTimeout,
		Urgency: UrgencyLow,
	}
}

// RecognizedNotification describes a recognized song.
func RecognizedNotification(r recognize.Result) Notification {
	body := r.Artist
	if r.Album != "" {
		body += " - " + r.Album
	}
	return Notification{
		Title:   "Song recognized: " + r.Title,
		Body:    body,
		Timeout: recognizedTimeout,
		Urgency: UrgencyNormal,
	}
}

// NowPlaying announces t, replacing the previous now-playing notification.
func (a *Announcer) NowPlaying(t playback.Track) {
	a.mu.Lock()
	defer a.mu.Unlock()

	n := NowPlayingNotification(t)
	n.ReplacesID = a.nowPlaying
	id, err := a.n.Notify(n)
	if err != nil {
		a.log.Warn("notify now playing", "err", err)
		return
	}
	a.nowPlaying = id
}

// Recognized announces a recognition result.
func (a *Announcer) Recognized(r recognize.Result) {
	if _, err := a.n.Notify(RecognizedNotification(r)); err != nil {
		a.log.Warn("notify recognized", "err", err)
	}
}

// Watch announces every Loading to Playing transition until the
// subscription ends. Resuming from pause is not announced.
func (a *Announcer) Watch(src Source) {
	sub := src.Subscribe()
	go func() {
		for {
			select {
			case <-sub.Done:
				return
			case e := <-sub.StateChanged:
				if e.Previous != playback.PhaseLoading || e.Current != playback.PhasePlaying {
					continue
				}
				if s := src.State(); s.Track != nil {
					a.NowPlaying(*s.Track)
				}
			case <-sub.TrackChanged:
			case <-sub.ModeChanged:
			}
		}
	}()
}
