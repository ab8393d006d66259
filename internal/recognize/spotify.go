package recognize

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const spotifyTokenURL = "https://accounts.spotify.com/api/token"

// Album is the album metadata shown for a recognized song.
type Album struct {
	Name     string
	ImageURL string
}

// AlbumLookup fetches album metadata for a Spotify track ID.
type AlbumLookup interface {
	LookupAlbum(ctx context.Context, spotifyID string) (Album, error)
}

// Spotify looks up tracks with client credentials.
type Spotify struct {
	client *spotify.Client
}

var _ AlbumLookup = (*Spotify)(nil)

// SpotifyOptions overrides endpoints, for tests.
type SpotifyOptions struct {
	TokenURL string
	BaseURL  string
	Client   *http.Client
}

// NewSpotify creates a lookup authenticated with the client credentials
// flow. Tokens are fetched and refreshed on demand.
func NewSpotify(clientID, clientSecret string, opts SpotifyOptions) *Spotify {
	tokenURL := opts.TokenURL
	if tokenURL == "" {
		tokenURL = spotifyTokenURL
	}
	cfg := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	ctx := context.Background()
	if opts.Client != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.Client)
	}
	httpClient := cfg.Client(ctx)

	var clientOpts []spotify.ClientOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, spotify.WithBaseURL(opts.BaseURL))
	}
	return &Spotify{client: spotify.New(httpClient, clientOpts...)}
}

// LookupAlbum returns the album name and its largest image.
func (s *Spotify) LookupAlbum(ctx context.Context, spotifyID string) (Album, error) {
	track, err := s.client.GetTrack(ctx, spotify.ID(spotifyID))
	if err != nil {
		return Album{}, fmt.Errorf("spotify track %s: %w", spotifyID, err)
	}
	album := Album{Name: track.Album.Name}
	if len(track.Album.Images) > 0 {
		album.ImageURL = track.Album.Images[0].URL
	}
	return album, nil
}
