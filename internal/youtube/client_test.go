package youtube

import (
	"context"
	"errors"
	"testing"

	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/playback"
)

const searchJSON = `{
  "_type": "playlist",
  "id": "coke studio",
  "entries": [
    {
      "id": "5Eqb_-j3FDA",
      "title": "Coke Studio | Season 14 | Pasoori | Ali Sethi x Shae Gill",
      "channel": "Coke Studio Pakistan",
      "thumbnails": [
        {"url": "https://i.ytimg.com/vi/5Eqb_-j3FDA/hqdefault.jpg?sqp=a", "width": 168, "height": 94},
        {"url": "https://i.ytimg.com/vi/5Eqb_-j3FDA/hqdefault.jpg?sqp=b", "width": 336, "height": 188}
      ]
    },
    {
      "id": "",
      "title": "broken entry"
    },
    {
      "id": "abc123",
      "title": "Kana Yaari",
      "uploader": "Kaifi Khalil"
    },
    {
      "id": "def456",
      "title": "Third"
    }
  ]
}`

type fakeRun struct {
	args []string
	out  string
	err  error
}

func (f *fakeRun) run(_ context.Context, _ *ytdlp.Command, args ...string) (string, error) {
	f.args = args
	return f.out, f.err
}

func newTestClient(f *fakeRun) *Client {
	c := New("", nil)
	c.run = f.run
	return c
}

func TestParseSearch(t *testing.T) {
	tracks, err := parseSearch([]byte(searchJSON), 5)
	require.NoError(t, err)
	require.Len(t, tracks, 3)

	assert.Equal(t, playback.Track{
		ID:           "5Eqb_-j3FDA",
		Title:        "Coke Studio | Season 14 | Paso",
		Artist:       "Coke Studio Pakistan",
		ThumbnailURL: "https://i.ytimg.com/vi/5Eqb_-j3FDA/hqdefault.jpg?sqp=b",
	}, tracks[0])

	assert.Equal(t, "Kaifi Khalil", tracks[1].Artist, "uploader is used when channel is missing")
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", tracks[1].ThumbnailURL)
	assert.Empty(t, tracks[2].StreamURL)
}

func TestParseSearch_RespectsLimit(t *testing.T) {
	tracks, err := parseSearch([]byte(searchJSON), 2)
	require.NoError(t, err)
	assert.Len(t, tracks, 2)
}

func TestParseSearch_Malformed(t *testing.T) {
	_, err := parseSearch([]byte(`{"entries": [`), 5)
	require.Error(t, err)
	assert.Equal(t, apperr.KindDecode, apperr.Classify(err))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short", "Pasoori", "Pasoori"},
		{"trims spaces", "  Pasoori  ", "Pasoori"},
		{"exactly 30", "123456789012345678901234567890", "123456789012345678901234567890"},
		{"ascii over 30", "1234567890123456789012345678901234", "123456789012345678901234567890"},
		{"wide runes count two columns", "日本語の歌のタイトルはとても長いですね本当に", "日本語の歌のタイトルはとても長"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input))
		})
	}
}

func TestSearch(t *testing.T) {
	f := &fakeRun{out: searchJSON}
	c := newTestClient(f)

	tracks, err := c.Search(context.Background(), "  Coke Studio ", 5)
	require.NoError(t, err)
	assert.Len(t, tracks, 3)
	assert.Equal(t, []string{"ytsearch5:Coke Studio"}, f.args)
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		run   fakeRun
		kind  apperr.Kind
	}{
		{"empty query", "   ", fakeRun{}, apperr.KindNotFound},
		{"no entries", "zzz", fakeRun{out: `{"entries": []}`}, apperr.KindNotFound},
		{"yt-dlp failure", "x", fakeRun{err: errors.New("exit status 1")}, apperr.KindNetwork},
		{"bad json", "x", fakeRun{out: "not json"}, apperr.KindDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&tt.run)
			_, err := c.Search(context.Background(), tt.query, 5)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.Classify(err))
		})
	}
}

func TestSearch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestClient(&fakeRun{err: errors.New("signal: killed")})

	_, err := c.Search(ctx, "x", 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, apperr.KindCancelled, apperr.Classify(err))
}

func TestResolve(t *testing.T) {
	f := &fakeRun{out: "\nhttps://rr1---sn.googlevideo.com/videoplayback?id=1\nhttps://second\n"}
	c := newTestClient(f)

	url, err := c.Resolve(context.Background(), "5Eqb_-j3FDA")
	require.NoError(t, err)
	assert.Equal(t, "https://rr1---sn.googlevideo.com/videoplayback?id=1", url)
	assert.Equal(t, []string{"https://www.youtube.com/watch?v=5Eqb_-j3FDA"}, f.args)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		run  fakeRun
		kind apperr.Kind
	}{
		{"empty id", "", fakeRun{}, apperr.KindNotFound},
		{"no url in output", "abc", fakeRun{out: "WARNING: nothing\n"}, apperr.KindNotFound},
		{"yt-dlp failure", "abc", fakeRun{err: errors.New("Video unavailable")}, apperr.KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(&tt.run)
			_, err := c.Resolve(context.Background(), tt.id)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.Classify(err))
		})
	}
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "ERROR: Video unavailable", lastLine("WARNING: x\nERROR: Video unavailable\n"))
	assert.Equal(t, "single", lastLine("single"))
}
