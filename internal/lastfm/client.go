// Package lastfm reads artist data from Last.fm for the Artist page. Only
// read-only methods are used, so an API key is enough.
package lastfm

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shkh/lastfm-go/lastfm"

	"github.com/llehouerou/hifi/internal/apperr"
)

// TaskName is the task name used for artist lookups.
const TaskName = "artist-load"

// errInvalidArtist is the Last.fm error code for an unknown artist.
const errInvalidArtist = 6

// source is the subset of the Last.fm API the client needs.
type source interface {
	similar(artist string, limit int) ([]SimilarArtist, error)
	topTracks(artist string, limit int) ([]TopTrack, error)
}

// Client wraps the Last.fm API for artist lookups.
type Client struct {
	src source
}

// New creates a client. No secret or session is required.
func New(apiKey string) *Client {
	return &Client{src: apiSource{api: lastfm.New(apiKey, "")}}
}

// GetSimilarArtists fetches similar artists.
func (c *Client) GetSimilarArtists(ctx context.Context, artist string, limit int) ([]SimilarArtist, error) {
	if err := validate(ctx, artist); err != nil {
		return nil, err
	}
	artists, err := c.src.similar(artist, limit)
	if err != nil {
		return nil, wrap("get similar artists", err)
	}
	return artists, nil
}

// GetArtistTopTracks fetches top tracks for an artist.
func (c *Client) GetArtistTopTracks(ctx context.Context, artist string, limit int) ([]TopTrack, error) {
	if err := validate(ctx, artist); err != nil {
		return nil, err
	}
	tracks, err := c.src.topTracks(artist, limit)
	if err != nil {
		return nil, wrap("get artist top tracks", err)
	}
	return tracks, nil
}

// Artist fetches everything the Artist page shows. An artist with neither
// similar artists nor top tracks is reported as not found.
func (c *Client) Artist(ctx context.Context, artist string, limit int) (ArtistInfo, error) {
	artist = strings.TrimSpace(artist)
	tracks, err := c.GetArtistTopTracks(ctx, artist, limit)
	if err != nil {
		return ArtistInfo{}, err
	}
	if err := ctx.Err(); err != nil {
		return ArtistInfo{}, err
	}
	similar, err := c.GetSimilarArtists(ctx, artist, limit)
	if err != nil {
		return ArtistInfo{}, err
	}
	if len(tracks) == 0 && len(similar) == 0 {
		return ArtistInfo{}, fmt.Errorf("artist %q: %w", artist, apperr.ErrNotFound)
	}
	return ArtistInfo{Name: artist, Similar: similar, TopTracks: tracks}, nil
}

func validate(ctx context.Context, artist string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(artist) == "" {
		return fmt.Errorf("empty artist: %w", apperr.ErrNotFound)
	}
	return nil
}

func wrap(op string, err error) error {
	var lfmErr *lastfm.LastfmError
	if errors.As(err, &lfmErr) && lfmErr.Code == errInvalidArtist {
		return fmt.Errorf("%s: %w: %w", op, apperr.ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrNetwork, err)
}

type apiSource struct {
	api *lastfm.Api
}

func (s apiSource) similar(artist string, limit int) ([]SimilarArtist, error) {
	result, err := s.api.Artist.GetSimilar(lastfm.P{
		"artist":      artist,
		"limit":       limit,
		"autocorrect": 1,
	})
	if err != nil {
		return nil, err
	}

	artists := make([]SimilarArtist, 0, len(result.Similars))
	for _, a := range result.Similars {
		artists = append(artists, SimilarArtist{
			Name:       a.Name,
			MatchScore: parseFloat(a.Match),
		})
	}
	return artists, nil
}

func (s apiSource) topTracks(artist string, limit int) ([]TopTrack, error) {
	result, err := s.api.Artist.GetTopTracks(lastfm.P{
		"artist":      artist,
		"limit":       limit,
		"autocorrect": 1,
	})
	if err != nil {
		return nil, err
	}

	tracks := make([]TopTrack, 0, len(result.Tracks))
	for i, t := range result.Tracks {
		tracks = append(tracks, TopTrack{
			Name:      t.Name,
			Playcount: parseInt(t.PlayCount),
			Rank:      i + 1,
		})
	}
	return tracks, nil
}

// parseFloat returns 0 for malformed values.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}
