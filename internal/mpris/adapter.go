// Package mpris exposes the player bar on the MPRIS D-Bus interface so media
// keys and desktop widgets can control it. Control calls are not applied
// directly: they are queued as messages for the UI loop, which owns the
// playback controller.
package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/hifi/internal/playback"
)

const (
	busName  = "hifi"
	identity = "HiFi"

	commandBuffer = 8
)

// Action is a control request received over D-Bus.
type Action int

const (
	ActionPlayPause Action = iota
	ActionPlay
	ActionPause
	ActionStop
	ActionSeek        // relative, Offset
	ActionSetPosition // absolute, Position
)

func (a Action) String() string {
	switch a {
	case ActionPlayPause:
		return "PlayPause"
	case ActionPlay:
		return "Play"
	case ActionPause:
		return "Pause"
	case ActionStop:
		return "Stop"
	case ActionSeek:
		return "Seek"
	case ActionSetPosition:
		return "SetPosition"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// CommandMsg carries an Action into the UI loop.
type CommandMsg struct {
	Action   Action
	Offset   time.Duration
	Position time.Duration
}

// StateReader is the read side of the playback controller.
type StateReader interface {
	State() playback.State
}

// commands is the queue between the D-Bus goroutine and the UI loop.
type commands struct {
	ch chan CommandMsg
}

func newCommands() *commands {
	return &commands{ch: make(chan CommandMsg, commandBuffer)}
}

// push drops the command when the UI loop is not keeping up.
func (c *commands) push(msg CommandMsg) {
	select {
	case c.ch <- msg:
	default:
	}
}

// waitCmd waits for the next command.
func (c *commands) waitCmd() tea.Cmd {
	return func() tea.Msg {
		return <-c.ch
	}
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error { return nil }

func (r *rootAdapter) Quit() error { return nil }

func (r *rootAdapter) CanQuit() (bool, error) { return false, nil }

func (r *rootAdapter) CanRaise() (bool, error) { return false, nil }

func (r *rootAdapter) HasTrackList() (bool, error) { return false, nil }

func (r *rootAdapter) Identity() (string, error) { return identity, nil }

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter. Reads come
// from the controller snapshot; writes are queued.
type playerAdapter struct {
	state StateReader
	cmds  *commands
}

func (p *playerAdapter) Next() error { return nil }

func (p *playerAdapter) Previous() error { return nil }

func (p *playerAdapter) Pause() error {
	p.cmds.push(CommandMsg{Action: ActionPause})
	return nil
}

func (p *playerAdapter) PlayPause() error {
	p.cmds.push(CommandMsg{Action: ActionPlayPause})
	return nil
}

func (p *playerAdapter) Stop() error {
	p.cmds.push(CommandMsg{Action: ActionStop})
	return nil
}

func (p *playerAdapter) Play() error {
	p.cmds.push(CommandMsg{Action: ActionPlay})
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	p.cmds.push(CommandMsg{Action: ActionSeek, Offset: time.Duration(offset) * time.Microsecond})
	return nil
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	// Stale requests for a previous track are ignored.
	s := p.state.State()
	if s.Track == nil || trackID != string(formatTrackID(s.Track.ID)) {
		return nil
	}
	p.cmds.push(CommandMsg{Action: ActionSetPosition, Position: time.Duration(position) * time.Microsecond})
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error { return nil }

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.state.State().Phase), nil
}

func (p *playerAdapter) Rate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetRate(_ float64) error { return nil }

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.state.State()), nil
}

func (p *playerAdapter) Volume() (float64, error) { return 1.0, nil }

func (p *playerAdapter) SetVolume(_ float64) error { return nil }

func (p *playerAdapter) Position() (int64, error) {
	return p.state.State().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) MaximumRate() (float64, error) { return 1.0, nil }

func (p *playerAdapter) CanGoNext() (bool, error) { return false, nil }

func (p *playerAdapter) CanGoPrevious() (bool, error) { return false, nil }

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.state.State().HasTrack(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.state.State().Phase.IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	s := p.state.State()
	return s.Phase.IsActive() && s.Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) { return true, nil }

func playbackStatus(phase playback.Phase) types.PlaybackStatus {
	switch phase {
	case playback.PhasePlaying, playback.PhaseLoading:
		return types.PlaybackStatusPlaying
	case playback.PhasePaused:
		return types.PlaybackStatusPaused
	case playback.PhaseIdle, playback.PhaseError:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func metadata(s playback.State) types.Metadata {
	if s.Track == nil {
		return types.Metadata{}
	}
	meta := types.Metadata{
		TrackId: formatTrackID(s.Track.ID),
		Length:  types.Microseconds(s.Duration.Microseconds()),
		Title:   s.Track.Title,
		ArtUrl:  s.Track.ThumbnailURL,
	}
	if s.Track.Artist != "" {
		meta.Artist = []string{s.Track.Artist}
	}
	return meta
}

func formatTrackID(id string) dbus.ObjectPath {
	h := fnv.New64a()
	h.Write([]byte(id))
	return dbus.ObjectPath(fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64()))
}
