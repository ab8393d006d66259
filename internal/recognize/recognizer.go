// Package recognize identifies the song playing nearby: it records a short
// sample, encodes it as WAV and sends it to ACRCloud.
package recognize

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Result is a recognized song.
type Result struct {
	Title    string
	Artist   string
	Album    string
	ImageURL string
}

// Service captures a sample and identifies it.
type Service interface {
	CaptureAndIdentify(ctx context.Context) (Result, error)
}

// Recognizer chains capture, WAV encoding, identification and an optional
// album lookup.
type Recognizer struct {
	capturer   Capturer
	identifier Identifier
	albums     AlbumLookup // optional
	duration   time.Duration
	sampleRate int
	tempDir    string
	log        *log.Logger
}

var _ Service = (*Recognizer)(nil)

// Options configures a Recognizer.
type Options struct {
	Capturer   Capturer
	Identifier Identifier
	Albums     AlbumLookup
	Duration   time.Duration
	SampleRate int
	TempDir    string // default: os.TempDir()
	Logger     *log.Logger
}

// New creates a recognizer.
func New(opts Options) *Recognizer {
	if opts.Duration <= 0 {
		opts.Duration = 5 * time.Second
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Recognizer{
		capturer:   opts.Capturer,
		identifier: opts.Identifier,
		albums:     opts.Albums,
		duration:   opts.Duration,
		sampleRate: opts.SampleRate,
		tempDir:    opts.TempDir,
		log:        opts.Logger,
	}
}

// CaptureAndIdentify records a sample and identifies it. The sample file is
// removed before returning. An album lookup failure leaves Album and
// ImageURL empty.
func (r *Recognizer) CaptureAndIdentify(ctx context.Context) (Result, error) {
	pcm, err := r.capturer.Capture(ctx, r.duration, r.sampleRate)
	if err != nil {
		return Result{}, fmt.Errorf("capture: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	path, err := writeWAV(r.tempDir, pcm, r.sampleRate)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			r.log.Warn("remove sample", "path", path, "err", err)
		}
	}()

	match, err := r.identifier.Identify(ctx, path)
	if err != nil {
		return Result{}, err
	}

	res := Result{Title: match.Title, Artist: match.Artist, Album: match.Album}
	if r.albums != nil && match.SpotifyID != "" {
		album, err := r.albums.LookupAlbum(ctx, match.SpotifyID)
		if err != nil {
			r.log.Warn("album lookup failed", "id", match.SpotifyID, "err", err)
		} else {
			if album.Name != "" {
				res.Album = album.Name
			}
			res.ImageURL = album.ImageURL
		}
	}
	r.log.Info("song recognized", "title", res.Title, "artist", res.Artist)
	return res, nil
}
