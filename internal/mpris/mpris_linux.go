//go:build linux

package mpris

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/quarckster/go-mpris-server/pkg/events"
	"github.com/quarckster/go-mpris-server/pkg/server"

	"github.com/llehouerou/hifi/internal/playback"
)

// Source is what the adapter needs from the playback controller.
type Source interface {
	StateReader
	Subscribe() *playback.Subscription
}

// Adapter connects the playback controller to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	events *events.EventHandler
	sub    *playback.Subscription
	cmds   *commands
	log    *log.Logger
	done   chan struct{}
}

// New creates and starts a new MPRIS adapter.
func New(src Source, logger *log.Logger) (*Adapter, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &Adapter{
		cmds: newCommands(),
		log:  logger,
		done: make(chan struct{}),
	}

	a.server = server.NewServer(busName, &rootAdapter{}, &playerAdapter{state: src, cmds: a.cmds})
	a.events = events.NewEventHandler(a.server)
	a.sub = src.Subscribe()

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn("mpris server stopped", "err", err)
		}
	}()
	go a.watch()

	return a, nil
}

// WaitCmd returns a command that waits for the next control request.
func (a *Adapter) WaitCmd() tea.Cmd {
	return a.cmds.waitCmd()
}

// watch emits property changes so clients refresh.
func (a *Adapter) watch() {
	for {
		select {
		case <-a.done:
			return
		case <-a.sub.Done:
			return
		case <-a.sub.StateChanged:
			if err := a.events.Player.OnPlayPause(); err != nil {
				a.log.Debug("mpris play/pause signal", "err", err)
			}
		case <-a.sub.TrackChanged:
			if err := a.events.Player.OnTitle(); err != nil {
				a.log.Debug("mpris title signal", "err", err)
			}
		case <-a.sub.ModeChanged:
		}
	}
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}
