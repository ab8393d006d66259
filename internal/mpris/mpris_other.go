//go:build !linux

package mpris

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifi/internal/playback"
)

// Source is what the adapter needs from the playback controller.
type Source interface {
	StateReader
	Subscribe() *playback.Subscription
}

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ Source, _ *log.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// WaitCmd never delivers a command.
func (a *Adapter) WaitCmd() tea.Cmd { return nil }

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
