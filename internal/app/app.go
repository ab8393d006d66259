// Package app is the root Bubble Tea model: sidebar navigation over seven
// pages, the job bar and the player bar. All background work goes through
// a single task runner; playback goes through the playback controller.
package app

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifi/internal/config"
	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/history"
	"github.com/llehouerou/hifi/internal/keymap"
	"github.com/llehouerou/hifi/internal/lastfm"
	"github.com/llehouerou/hifi/internal/notify"
	"github.com/llehouerou/hifi/internal/playback"
	"github.com/llehouerou/hifi/internal/recognize"
	"github.com/llehouerou/hifi/internal/task"
	"github.com/llehouerou/hifi/internal/thumbnail"
	"github.com/llehouerou/hifi/internal/ui/kittyimg"
	"github.com/llehouerou/hifi/internal/ui/shelf"
	"github.com/llehouerou/hifi/internal/ui/sidebar"
	"github.com/llehouerou/hifi/internal/ui/styles"
)

// ActiveTab is the page shown next to the sidebar.
type ActiveTab = sidebar.Tab

// Searcher runs text queries against the video catalog.
type Searcher = shelf.Searcher

// ArtistSource loads the Artist page.
type ArtistSource interface {
	Artist(ctx context.Context, name string, limit int) (lastfm.ArtistInfo, error)
}

// CommandSource feeds external playback commands into the loop.
type CommandSource interface {
	WaitCmd() tea.Cmd
}

// Deps are the collaborators of the model. Optional services are nil when
// not configured.
type Deps struct {
	Config     *config.Config
	Runner     *task.Runner
	Controller *playback.Controller
	Searcher   Searcher
	Thumbnails thumbnail.Fetcher // optional
	Recognizer recognize.Service // optional
	Artists    ArtistSource      // optional
	Announcer  *notify.Announcer // optional
	Commands   CommandSource     // optional
	History    *history.History  // optional, created when nil
	Logger     *log.Logger       // optional
	Version    string
}

// Shelf IDs outside the Home range.
const (
	discoverShelfID = 1000 + iota
	artistShelfID
)

// thumbImageID is the kitty image slot used by the expanded player bar.
const thumbImageID = 1

// Model is the root application model.
type Model struct {
	runner     *task.Runner
	controller *playback.Controller
	searcher   Searcher
	thumbs     thumbnail.Fetcher
	recognizer recognize.Service
	artists    ArtistSource
	announcer  *notify.Announcer
	commands   CommandSource
	history    *history.History
	log        *log.Logger
	version    string

	keys     *keymap.Resolver
	help     help.Model
	spinner  spinner.Model
	spinning bool
	showHelp bool

	Active    ActiveTab
	home      shelf.Group
	discover  discoverPage
	recognize recognizePage
	artist    artistPage
	recent    historyPage
	most      historyPage

	thumb        thumbState
	frame        float64
	animating    bool
	kitty        bool
	tickInterval time.Duration
	searchLimit  int

	// play carries the outcome of the last search-and-play request.
	play playRequest

	width, height int
}

// New creates the root model and starts loading the Home shelves.
func New(deps Deps) Model {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hist := deps.History
	if hist == nil {
		hist = history.New()
	}

	shelves := make([]shelf.Model, 0, len(cfg.GetShelves()))
	for i, s := range cfg.GetShelves() {
		shelves = append(shelves, shelf.New(i, shelf.Params{
			Title:     s.Title,
			Query:     s.Query,
			Fetch:     s.Fetch,
			Skip:      s.Skip,
			Show:      s.Show,
			FailLabel: errmsg.NoPlaylist,
			Art:       deps.Thumbnails,
		}))
	}

	h := help.New()
	h.Styles.ShortKey = styles.T().S().Accent
	h.Styles.ShortDesc = styles.T().S().Muted
	h.Styles.FullKey = styles.T().S().Accent
	h.Styles.FullDesc = styles.T().S().Muted

	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.T().Primary)),
	)

	m := Model{
		runner:       deps.Runner,
		controller:   deps.Controller,
		searcher:     deps.Searcher,
		thumbs:       deps.Thumbnails,
		recognizer:   deps.Recognizer,
		artists:      deps.Artists,
		announcer:    deps.Announcer,
		commands:     deps.Commands,
		history:      hist,
		log:          logger,
		version:      deps.Version,
		keys:         keymap.NewResolver(keymap.All),
		help:         h,
		spinner:      sp,
		spinning:     true,
		Active:       sidebar.TabHome,
		home:         shelf.NewGroup(shelves...),
		discover:     newDiscoverPage(cfg.GetSearchConfig().Limit, deps.Thumbnails),
		artist:       newArtistPage(deps.Thumbnails),
		recent:       newHistoryPage(historyRecent),
		most:         newHistoryPage(historyMost),
		kitty:        kittyimg.Supported(),
		tickInterval: cfg.GetPlayerConfig().TickInterval(),
		searchLimit:  cfg.GetSearchConfig().Limit,
	}
	m.home.SetFocused(true)
	m.home.Load(m.runner, m.searcher)
	return m
}

// Init implements tea.Model. It starts the runner, tick and command loops.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.runner.WaitCmd(),
		TickCmd(m.tickInterval),
		m.spinner.Tick,
	}
	if m.commands != nil {
		cmds = append(cmds, m.commands.WaitCmd())
	}
	return tea.Batch(cmds...)
}

// Shutdown cancels every task, waits briefly for workers and closes the
// player. Safe to call after the program exited.
func (m Model) Shutdown(timeout time.Duration) error {
	m.runner.CancelAll()
	if !m.runner.Drain(timeout) {
		m.log.Warn("tasks still running at exit")
	}
	return m.controller.Shutdown()
}
