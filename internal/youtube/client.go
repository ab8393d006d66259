// Package youtube searches and resolves tracks through yt-dlp.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lrstanley/go-ytdlp"
	"github.com/mattn/go-runewidth"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/playback"
)

// MaxLabelWidth is the display width titles and artists are cut to.
const MaxLabelWidth = 30

const watchURL = "https://www.youtube.com/watch?v="

// runFunc executes a prepared yt-dlp command and returns its stdout.
type runFunc func(ctx context.Context, cmd *ytdlp.Command, args ...string) (string, error)

// Client wraps the yt-dlp executable.
type Client struct {
	executable string
	log        *log.Logger
	run        runFunc
}

// New creates a client. An empty executable lets go-ytdlp find yt-dlp on
// PATH. A nil logger discards output.
func New(executable string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{executable: executable, log: logger, run: runCommand}
}

func runCommand(ctx context.Context, cmd *ytdlp.Command, args ...string) (string, error) {
	res, err := cmd.Run(ctx, args...)
	if err != nil {
		if res != nil && strings.TrimSpace(res.Stderr) != "" {
			return "", fmt.Errorf("%w: %s", err, lastLine(res.Stderr))
		}
		return "", err
	}
	return res.Stdout, nil
}

func (c *Client) command() *ytdlp.Command {
	cmd := ytdlp.New().NoWarnings()
	if c.executable != "" {
		cmd = cmd.SetExecutable(c.executable)
	}
	return cmd
}

// Search returns up to limit tracks matching query, without stream URLs.
// An empty result is reported as apperr.ErrNotFound.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]playback.Track, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty query: %w", apperr.ErrNotFound)
	}
	if limit <= 0 {
		limit = 1
	}

	c.log.Debug("yt-dlp search", "query", query, "limit", limit)
	out, err := c.run(ctx, c.command().FlatPlaylist().DumpSingleJSON(), fmt.Sprintf("ytsearch%d:%s", limit, query))
	if err != nil {
		return nil, c.wrap(ctx, "search", err)
	}

	tracks, err := parseSearch([]byte(out), limit)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("search %q: %w", query, apperr.ErrNotFound)
	}
	return tracks, nil
}

// Resolve returns a direct audio stream URL for a video ID.
func (c *Client) Resolve(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("empty video id: %w", apperr.ErrNotFound)
	}

	c.log.Debug("yt-dlp resolve", "id", id)
	out, err := c.run(ctx, c.command().Format("bestaudio/best").GetURL().NoPlaylist(), watchURL+id)
	if err != nil {
		return "", c.wrap(ctx, "resolve "+id, err)
	}

	for line := range strings.Lines(out) {
		if line = strings.TrimSpace(line); strings.HasPrefix(line, "http") {
			return line, nil
		}
	}
	return "", fmt.Errorf("resolve %s: no stream url: %w", id, apperr.ErrNotFound)
}

func (c *Client) wrap(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	c.log.Warn("yt-dlp failed", "op", op, "err", err)
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrNetwork, err)
}

type searchResult struct {
	Entries []entry `json:"entries"`
}

type entry struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Channel    string      `json:"channel"`
	Uploader   string      `json:"uploader"`
	Thumbnails []thumbnail `json:"thumbnails"`
}

type thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func parseSearch(data []byte, limit int) ([]playback.Track, error) {
	var res searchResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse search result: %w", err)
	}

	tracks := make([]playback.Track, 0, min(len(res.Entries), limit))
	for _, e := range res.Entries {
		if e.ID == "" {
			continue
		}
		artist := e.Channel
		if artist == "" {
			artist = e.Uploader
		}
		tracks = append(tracks, playback.Track{
			ID:           e.ID,
			Title:        Truncate(e.Title),
			Artist:       Truncate(artist),
			ThumbnailURL: bestThumbnail(e),
		})
		if len(tracks) == limit {
			break
		}
	}
	return tracks, nil
}

// bestThumbnail picks the widest thumbnail, falling back to the standard
// image URL for the video.
func bestThumbnail(e entry) string {
	best := thumbnail{}
	for _, t := range e.Thumbnails {
		if t.URL != "" && (best.URL == "" || t.Width > best.Width) {
			best = t
		}
	}
	if best.URL != "" {
		return best.URL
	}
	return "https://i.ytimg.com/vi/" + e.ID + "/hqdefault.jpg"
}

// Truncate cuts s to MaxLabelWidth display columns.
func Truncate(s string) string {
	return runewidth.Truncate(strings.TrimSpace(s), MaxLabelWidth, "")
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
