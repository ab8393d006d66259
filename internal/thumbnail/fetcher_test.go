package thumbnail

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/hifi/internal/apperr"
)

func jpegImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0xb0, A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

type server struct {
	*httptest.Server
	hits atomic.Int32
}

func newServer(t *testing.T, body []byte) *server {
	t.Helper()
	s := &server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		switch r.URL.Path {
		case "/missing.jpg":
			http.NotFound(w, r)
		case "/broken.jpg":
			w.WriteHeader(http.StatusBadGateway)
		case "/garbage.jpg":
			_, _ = w.Write([]byte("<html>not an image</html>"))
		default:
			_, _ = w.Write(body)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestFetch_ResizesToPNG(t *testing.T) {
	srv := newServer(t, jpegImage(t, 640, 360))
	f := NewHTTPFetcher(Options{Width: 160, Height: 160})

	data, err := f.Fetch(context.Background(), srv.URL+"/hq.jpg")
	require.NoError(t, err)

	img := decodePNG(t, data)
	assert.Equal(t, 160, img.Bounds().Dx())
	assert.Equal(t, 90, img.Bounds().Dy())
}

func TestFetch_SmallImageNotUpscaled(t *testing.T) {
	srv := newServer(t, jpegImage(t, 120, 90))
	f := NewHTTPFetcher(Options{})

	data, err := f.Fetch(context.Background(), srv.URL+"/small.jpg")
	require.NoError(t, err)
	assert.Equal(t, 120, decodePNG(t, data).Bounds().Dx())
}

func TestFetch_Errors(t *testing.T) {
	srv := newServer(t, nil)
	f := NewHTTPFetcher(Options{})

	tests := []struct {
		name string
		url  string
		kind apperr.Kind
	}{
		{"empty url", "", apperr.KindNotFound},
		{"not found", srv.URL + "/missing.jpg", apperr.KindNotFound},
		{"bad status", srv.URL + "/broken.jpg", apperr.KindNetwork},
		{"not an image", srv.URL + "/garbage.jpg", apperr.KindDecode},
		{"unreachable", "http://127.0.0.1:1/x.jpg", apperr.KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), tt.url)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperr.Classify(err))
		})
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	srv := newServer(t, jpegImage(t, 10, 10))
	f := NewHTTPFetcher(Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.Fetch(ctx, srv.URL+"/x.jpg")
	require.Error(t, err)
	assert.Equal(t, apperr.KindCancelled, apperr.Classify(err))
}

func TestFetch_UsesCache(t *testing.T) {
	srv := newServer(t, jpegImage(t, 64, 64))
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	f := NewHTTPFetcher(Options{Cache: cache})

	first, err := f.Fetch(context.Background(), srv.URL+"/a.jpg")
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), srv.URL+"/a.jpg")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestFetch_FailuresAreNotCached(t *testing.T) {
	srv := newServer(t, nil)
	cache, err := NewCache(t.TempDir())
	require.NoError(t, err)
	f := NewHTTPFetcher(Options{Cache: cache})

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.jpg")
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), srv.URL+"/missing.jpg")
	require.Error(t, err)

	assert.Equal(t, int32(2), srv.hits.Load())
}
