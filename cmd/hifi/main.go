// Command hifi is a terminal music player streaming songs from YouTube.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/llehouerou/hifi/internal/app"
	"github.com/llehouerou/hifi/internal/config"
	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/lastfm"
	"github.com/llehouerou/hifi/internal/logging"
	"github.com/llehouerou/hifi/internal/mpris"
	"github.com/llehouerou/hifi/internal/notify"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/player"
	"github.com/llehouerou/hifi/internal/recognize"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/thumbnail"
	"github.com/llehouerou/hifi/internal/youtube"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 2 * time.Second

func main() {
	cmd := &cli.Command{
		Name:    "hifi",
		Usage:   "Stream music from YouTube in the terminal",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Log file path (default: $XDG_STATE_HOME/hifi/hifi.log)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print the version",
				Action: func(_ context.Context, _ *cli.Command) error {
					fmt.Println(version)
					return nil
				},
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command) error {
	logger, closer, err := logging.Open(c.String("log-file"), c.Bool("debug"))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpOpenLogFile, err))
	}
	defer closer.Close()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLoadConfig, err))
	}

	deps, cleanup := wire(cfg, logger)
	defer cleanup()

	logger.Info("starting", "version", version)
	m := app.New(deps)
	final, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()

	if fm, ok := final.(app.Model); ok {
		m = fm
	}
	if serr := m.Shutdown(shutdownTimeout); serr != nil {
		logger.Warn("player shutdown", "err", serr)
	}
	deps.Runner.Close()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}
	return nil
}

// wire builds the services. Optional integrations that fail to start are
// logged and left out.
func wire(cfg *config.Config, logger *log.Logger) (app.Deps, func()) {
	var closers []func() error

	runner := task.NewRunner(logging.With(logger, "component", "task"))

	sc := cfg.GetSearchConfig()
	yt := youtube.New(sc.YtdlpPath, logging.With(logger, "component", "youtube"))

	pc := cfg.GetPlayerConfig()
	mpv := player.NewMPV(player.MPVConfig{Path: pc.MPVPath, Args: pc.MPVArgs}, logging.With(logger, "component", "mpv"))
	controller := playback.New(mpv, yt, runner, logging.With(logger, "component", "playback"))

	hc := cfg.GetHTTPConfig()
	client := &http.Client{Timeout: hc.Timeout()}

	cache, err := thumbnail.NewCache("")
	if err != nil {
		logger.Warn("thumbnail cache disabled", "err", err)
	}

	deps := app.Deps{
		Config:     cfg,
		Runner:     runner,
		Controller: controller,
		Searcher:   yt,
		Thumbnails: thumbnail.NewHTTPFetcher(thumbnail.Options{
			Client:            client,
			RequestsPerSecond: hc.RequestsPerSecond,
			Burst:             hc.Burst,
			Cache:             cache,
			Logger:            logging.With(logger, "component", "thumbnail"),
		}),
		Logger:  logger,
		Version: version,
	}

	if cfg.HasRecognizeConfig() {
		deps.Recognizer = newRecognizer(cfg, client, logger)
	} else {
		logger.Info("recognition disabled: no ACRCloud credentials")
	}

	if cfg.HasLastfmConfig() {
		deps.Artists = lastfm.New(cfg.Lastfm.APIKey)
	}

	if n, err := notify.New(); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpNotify, err))
	} else {
		a := notify.NewAnnouncer(n, logging.With(logger, "component", "notify"))
		a.Watch(controller)
		deps.Announcer = a
	}

	if adapter, err := mpris.New(controller, logging.With(logger, "component", "mpris")); err != nil {
		logger.Warn(errmsg.Format(errmsg.OpMPRIS, err))
	} else {
		deps.Commands = adapter
		closers = append(closers, adapter.Close)
	}

	return deps, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("close", "err", err)
			}
		}
	}
}

func newRecognizer(cfg *config.Config, client *http.Client, logger *log.Logger) *recognize.Recognizer {
	rc := cfg.GetRecognizeConfig()
	l := logging.With(logger, "component", "recognize")

	var albums recognize.AlbumLookup
	if cfg.HasSpotifyConfig() {
		albums = recognize.NewSpotify(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret,
			recognize.SpotifyOptions{Client: client})
	}

	return recognize.New(recognize.Options{
		Capturer:   recognize.NewCommandCapturer(rc.CaptureCommand, l),
		Identifier: recognize.NewACRCloud(rc.Host, rc.AccessKey, rc.AccessSecret, client, l),
		Albums:     albums,
		Duration:   rc.SampleDuration(),
		SampleRate: rc.SampleRate,
		Logger:     l,
	})
}
