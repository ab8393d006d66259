package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/lastfm"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/recognize"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/thumbnail"
	"github.com/llehouerou/hifi/internal/ui/sidebar"
)

// frameInterval paces the expanded player bar animation.
const frameInterval = 120 * time.Millisecond

// TaskSearchAndPlay is the task name for "find this song and play it".
const TaskSearchAndPlay = "search-and-play"

// artistTopLimit is the number of similar artists and top tracks fetched.
const artistTopLimit = 10

// TickCmd returns a command that sends TickMsg after interval.
func TickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// FrameCmd returns a command that sends the next animation frame.
func FrameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

// playRequest tracks the latest search-and-play request. Older requests
// are cancelled and their results dropped by sequence number.
type playRequest struct {
	seq    uint64
	handle *task.Handle
	origin ActiveTab
	query  string
	err    string
}

// searchAndPlay finds the first result for query and plays it. origin is
// the page that shows a failure.
func (m *Model) searchAndPlay(origin ActiveTab, query string) {
	m.runner.Cancel(m.play.handle)
	m.play.seq++
	m.play.origin = origin
	m.play.query = query
	m.play.err = ""

	seq, s := m.play.seq, m.searcher
	m.play.handle = m.runner.Run(TaskSearchAndPlay, func(ctx context.Context) (any, error) {
		tracks, err := s.Search(ctx, query, 1)
		if err != nil {
			return nil, err
		}
		if len(tracks) == 0 {
			return nil, fmt.Errorf("no result for %q: %w", query, apperr.ErrNotFound)
		}
		return tracks[0], nil
	}, task.Callbacks{
		OnSuccess: func(v any) tea.Msg {
			t, _ := v.(playback.Track)
			return PlayFoundMsg{Request: seq, Track: t}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			return PlayNotFoundMsg{Request: seq, Err: err}
		},
	}, task.WithLabel("Finding '"+query+"'"))
}

// startThumbnail fetches the thumbnail of t, replacing any pending fetch.
func (m *Model) startThumbnail(t playback.Track) {
	m.runner.Cancel(m.thumb.handle)
	m.thumb = thumbState{trackID: t.ID}
	if m.thumbs == nil || t.ThumbnailURL == "" {
		return
	}
	id, url, f := t.ID, t.ThumbnailURL, m.thumbs
	m.thumb.handle = m.runner.Run(thumbnail.TaskName, func(ctx context.Context) (any, error) {
		return f.Fetch(ctx, url)
	}, task.Callbacks{
		OnSuccess: func(v any) tea.Msg {
			data, _ := v.([]byte)
			return ThumbnailMsg{TrackID: id, Data: data}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			return ThumbnailFailedMsg{TrackID: id, Err: err}
		},
	}, task.WithLabel("Fetching artwork"))
}

// useThumbnail sets the thumbnail of track id from data already at hand.
func (m *Model) useThumbnail(id string, data []byte) {
	if m.thumb.trackID == id && m.thumb.data != nil {
		return
	}
	m.runner.Cancel(m.thumb.handle)
	m.thumb = thumbState{trackID: id, data: data}
}

// startRecognition records and identifies a sample. It is a no-op while a
// recognition is already listening or when no service is configured.
func (m *Model) startRecognition() {
	if m.recognizer == nil || m.recognize.status == recognizeListening {
		return
	}
	m.recognize.status = recognizeListening
	m.recognize.result = recognize.Result{}
	if m.play.origin == sidebar.TabRecognize {
		m.play.err = ""
	}

	svc := m.recognizer
	m.recognize.handle = m.runner.Run(recognize.TaskName, func(ctx context.Context) (any, error) {
		return svc.CaptureAndIdentify(ctx)
	}, task.Callbacks{
		OnSuccess: func(v any) tea.Msg {
			r, _ := v.(recognize.Result)
			return RecognizedMsg{Result: r}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			return RecognizeFailedMsg{Err: err}
		},
	}, task.WithLabel("Listening..."))
}

// loadArtist fetches Last.fm data for name, replacing any pending lookup.
func (m *Model) loadArtist(name string) {
	m.runner.Cancel(m.artist.handle)
	m.artist.begin(name)
	m.artist.videos.SetQuery(name, name)
	m.artist.videos.Load(m.runner, m.searcher)

	if m.artists == nil {
		m.artist.status = artistUnavailable
		return
	}
	src := m.artists
	m.artist.handle = m.runner.Run(lastfm.TaskName, func(ctx context.Context) (any, error) {
		return src.Artist(ctx, name, artistTopLimit)
	}, task.Callbacks{
		OnSuccess: func(v any) tea.Msg {
			info, _ := v.(lastfm.ArtistInfo)
			return ArtistLoadedMsg{Name: name, Info: info}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			return ArtistFailedMsg{Name: name, Err: err}
		},
	}, task.WithLabel("Loading "+name))
}
