// Package thumbnail downloads track thumbnails and normalizes them to small
// PNG images ready for the terminal.
package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder for thumbnails
	_ "image/jpeg" // JPEG decoder for thumbnails
	"image/png"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nfnt/resize"
	"golang.org/x/time/rate"

	"github.com/llehouerou/hifi/internal/apperr"
)

// TaskName is the task name used for thumbnail downloads.
const TaskName = "image-fetch"

const (
	maxBodySize = 8 << 20

	// DefaultWidth and DefaultHeight bound the stored image in pixels.
	DefaultWidth  = 320
	DefaultHeight = 320
)

// Fetcher returns a thumbnail as PNG bytes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Options configures an HTTPFetcher. Zero values take defaults.
type Options struct {
	Client            *http.Client
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Width, Height     uint
	Cache             *Cache
	Logger            *log.Logger
}

// HTTPFetcher downloads, decodes and resizes images, with a shared rate
// limit and an optional disk cache.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *Cache
	width   uint
	height  uint
	log     *log.Logger
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := max(opts.Burst, 1)
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	f := &HTTPFetcher{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		cache:   opts.Cache,
		width:   opts.Width,
		height:  opts.Height,
		log:     logger,
	}
	if f.width == 0 {
		f.width = DefaultWidth
	}
	if f.height == 0 {
		f.height = DefaultHeight
	}
	return f
}

// Fetch returns the image at url as a PNG no larger than the configured
// bounds. HTTP failures wrap apperr.ErrNetwork (apperr.ErrNotFound for 404)
// and undecodable bodies wrap apperr.ErrDecode.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty thumbnail url: %w", apperr.ErrNotFound)
	}
	if data := f.cache.Get(url, f.width, f.height); data != nil {
		return data, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", url, apperr.ErrDecode, err)
	}

	resized := resize.Thumbnail(f.width, f.height, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	data := buf.Bytes()

	if err := f.cache.Put(url, f.width, f.height, data); err != nil {
		f.log.Debug("thumbnail cache write failed", "err", err)
	}
	return data, nil
}

func (f *HTTPFetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", url, apperr.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: status %d: %w", url, resp.StatusCode, apperr.ErrNetwork)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", url, apperr.ErrNetwork, err)
	}
	return body, nil
}
