package lastfm

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// ArtistInfo is what the Artist page shows.
type ArtistInfo struct {
	Name      string
	Similar   []SimilarArtist
	TopTracks []TopTrack
}

// TopTrack is one entry of an artist's most played tracks.
type TopTrack struct {
	Name      string
	Playcount int
	Rank      int
}

// Plays formats the play count, e.g. "1,200 plays".
func (t TopTrack) Plays() string {
	return humanize.Comma(int64(t.Playcount)) + " plays"
}

// SimilarArtist is a related artist with Last.fm's similarity in [0, 1].
type SimilarArtist struct {
	Name       string
	MatchScore float64
}

// Match formats the similarity as a rounded percentage, e.g. "80% match".
func (a SimilarArtist) Match() string {
	return strconv.Itoa(int(math.Round(a.MatchScore*100))) + "% match"
}
