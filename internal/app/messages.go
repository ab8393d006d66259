package app

import (
	"time"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/lastfm"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/recognize"
)

// TickMsg polls the player position.
type TickMsg time.Time

// FrameMsg advances the expanded player bar animation.
type FrameMsg time.Time

// ThumbnailMsg carries the PNG thumbnail of a track.
type ThumbnailMsg struct {
	TrackID string
	Data    []byte
}

// ThumbnailFailedMsg reports a thumbnail that could not be fetched. The
// player bar keeps its placeholder.
type ThumbnailFailedMsg struct {
	TrackID string
	Err     *apperr.Error
}

// RecognizedMsg carries an identified song.
type RecognizedMsg struct {
	Result recognize.Result
}

// RecognizeFailedMsg reports a failed recognition.
type RecognizeFailedMsg struct {
	Err *apperr.Error
}

// ArtistLoadedMsg carries the Last.fm data for an artist.
type ArtistLoadedMsg struct {
	Name string
	Info lastfm.ArtistInfo
}

// ArtistFailedMsg reports a failed artist lookup.
type ArtistFailedMsg struct {
	Name string
	Err  *apperr.Error
}

// PlayFoundMsg carries the first search result of a search-and-play
// request.
type PlayFoundMsg struct {
	Request uint64
	Track   playback.Track
}

// PlayNotFoundMsg reports a search-and-play request without a playable
// result.
type PlayNotFoundMsg struct {
	Request uint64
	Err     *apperr.Error
}
