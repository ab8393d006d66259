package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "hifi"

type Config struct {
	Player    PlayerConfig    `koanf:"player"`
	Search    SearchConfig    `koanf:"search"`
	Recognize RecognizeConfig `koanf:"recognize"`
	HTTP      HTTPConfig      `koanf:"http"`

	// Spotify metadata for recognized songs (optional)
	Spotify SpotifyConfig `koanf:"spotify"`

	// Last.fm artist page (optional)
	Lastfm LastfmConfig `koanf:"lastfm"`

	// Home page shelves, in display order
	Shelves []ShelfConfig `koanf:"shelves"`
}

// PlayerConfig configures the mpv transport.
type PlayerConfig struct {
	MPVPath        string   `koanf:"mpv_path"`         // default: "mpv"
	MPVArgs        []string `koanf:"mpv_args"`         // extra mpv arguments
	TickIntervalMs int      `koanf:"tick_interval_ms"` // position poll interval (default: 1000)
}

// SearchConfig configures yt-dlp.
type SearchConfig struct {
	YtdlpPath string `koanf:"ytdlp_path"` // default: resolved from PATH
	Limit     int    `koanf:"limit"`      // Discover result count (default: 5)
}

// RecognizeConfig holds the ACRCloud credentials and capture settings.
type RecognizeConfig struct {
	Host           string   `koanf:"host"` // e.g., "identify-ap-southeast-1.acrcloud.com"
	AccessKey      string   `koanf:"access_key"`
	AccessSecret   string   `koanf:"access_secret"`
	SampleSeconds  int      `koanf:"sample_seconds"`  // default: 5
	SampleRate     int      `koanf:"sample_rate"`     // default: 44100
	CaptureCommand []string `koanf:"capture_command"` // default: arecord raw s16le mono
}

// HTTPConfig configures outgoing HTTP requests.
type HTTPConfig struct {
	TimeoutSeconds    int     `koanf:"timeout_seconds"`     // default: 15
	RequestsPerSecond float64 `koanf:"requests_per_second"` // thumbnail rate limit (default: 8)
	Burst             int     `koanf:"burst"`               // default: 4
}

// SpotifyConfig holds client credentials for track metadata lookups.
type SpotifyConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
}

// LastfmConfig holds the Last.fm API key. No session is needed.
type LastfmConfig struct {
	APIKey string `koanf:"api_key"`
}

// ShelfConfig describes one curated track list.
type ShelfConfig struct {
	Title string `koanf:"title"`
	Query string `koanf:"query"`
	Fetch int    `koanf:"fetch"` // results requested from search
	Skip  int    `koanf:"skip"`  // leading results dropped
	Show  int    `koanf:"show"`  // shown before "Show more"
}

// Environment overrides for credentials.
const (
	EnvACRHost             = "HIFI_ACR_HOST"
	EnvACRAccessKey        = "HIFI_ACR_ACCESS_KEY"
	EnvACRAccessSecret     = "HIFI_ACR_ACCESS_SECRET"
	EnvSpotifyClientID     = "HIFI_SPOTIFY_CLIENT_ID"
	EnvSpotifyClientSecret = "HIFI_SPOTIFY_CLIENT_SECRET"
	EnvLastfmAPIKey        = "HIFI_LASTFM_API_KEY"
)

// Load reads configuration. When path is empty the default locations are
// tried in order (last wins); otherwise only path is read and must exist.
// A .env file in the working directory and HIFI_* variables override
// credentials.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	} else {
		for _, p := range getConfigPaths() {
			if _, err := os.Stat(p); err == nil {
				if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
					return nil, fmt.Errorf("load %s: %w", p, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(cfg)

	cfg.Player.MPVPath = expandPath(cfg.Player.MPVPath)
	cfg.Search.YtdlpPath = expandPath(cfg.Search.YtdlpPath)
	cfg.Recognize.Host = strings.TrimSuffix(strings.TrimPrefix(cfg.Recognize.Host, "https://"), "/")

	return cfg, nil
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	set(&cfg.Recognize.Host, EnvACRHost)
	set(&cfg.Recognize.AccessKey, EnvACRAccessKey)
	set(&cfg.Recognize.AccessSecret, EnvACRAccessSecret)
	set(&cfg.Spotify.ClientID, EnvSpotifyClientID)
	set(&cfg.Spotify.ClientSecret, EnvSpotifyClientSecret)
	set(&cfg.Lastfm.APIKey, EnvLastfmAPIKey)
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/hifi/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasRecognizeConfig returns true if song recognition is configured.
func (c *Config) HasRecognizeConfig() bool {
	return c.Recognize.AccessKey != "" && c.Recognize.AccessSecret != ""
}

// HasSpotifyConfig returns true if Spotify metadata lookups are configured.
func (c *Config) HasSpotifyConfig() bool {
	return c.Spotify.ClientID != "" && c.Spotify.ClientSecret != ""
}

// HasLastfmConfig returns true if the artist page can query Last.fm.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != ""
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player
	if cfg.MPVPath == "" {
		cfg.MPVPath = "mpv"
	}
	if cfg.TickIntervalMs <= 0 {
		cfg.TickIntervalMs = 1000
	}
	return cfg
}

// TickInterval returns the position poll interval.
func (p PlayerConfig) TickInterval() time.Duration {
	return time.Duration(p.TickIntervalMs) * time.Millisecond
}

// GetSearchConfig returns the search configuration with defaults applied.
func (c *Config) GetSearchConfig() SearchConfig {
	cfg := c.Search
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	return cfg
}

// GetRecognizeConfig returns the recognition configuration with defaults
// applied.
func (c *Config) GetRecognizeConfig() RecognizeConfig {
	cfg := c.Recognize
	if cfg.Host == "" {
		cfg.Host = "identify-ap-southeast-1.acrcloud.com"
	}
	if cfg.SampleSeconds <= 0 {
		cfg.SampleSeconds = 5
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 44100
	}
	return cfg
}

// SampleDuration returns the capture length.
func (r RecognizeConfig) SampleDuration() time.Duration {
	return time.Duration(r.SampleSeconds) * time.Second
}

// GetHTTPConfig returns the HTTP configuration with defaults applied.
func (c *Config) GetHTTPConfig() HTTPConfig {
	cfg := c.HTTP
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 15
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 8
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 4
	}
	return cfg
}

// Timeout returns the per-request timeout.
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}

// DefaultShelves are shown when no [[shelves]] are configured.
var DefaultShelves = []ShelfConfig{
	{Title: "Weekly Top Songs", Query: "Coke Studio", Fetch: 25, Skip: 2, Show: 5},
	{Title: "Mood Songs", Query: "Sad Songs", Fetch: 20, Skip: 2, Show: 5},
}

// GetShelves returns the configured shelves, or DefaultShelves. Entries
// without a query are dropped and counts are normalized.
func (c *Config) GetShelves() []ShelfConfig {
	if len(c.Shelves) == 0 {
		return append([]ShelfConfig(nil), DefaultShelves...)
	}
	shelves := make([]ShelfConfig, 0, len(c.Shelves))
	for _, s := range c.Shelves {
		if strings.TrimSpace(s.Query) == "" {
			continue
		}
		if s.Title == "" {
			s.Title = s.Query
		}
		if s.Fetch <= 0 {
			s.Fetch = 20
		}
		if s.Skip < 0 || s.Skip >= s.Fetch {
			s.Skip = 0
		}
		if s.Show <= 0 {
			s.Show = 5
		}
		shelves = append(shelves, s)
	}
	if len(shelves) == 0 {
		return append([]ShelfConfig(nil), DefaultShelves...)
	}
	return shelves
}
