// internal/playback/state.go
package playback

import "time"

// Phase is the discrete state of the player bar.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhasePlaying
	PhasePaused
	PhaseError
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseLoading:
		return "Loading"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a stream is attached (playing or paused).
func (p Phase) IsActive() bool {
	return p == PhasePlaying || p == PhasePaused
}

// DisplayMode is the player bar layout.
type DisplayMode int

const (
	DisplayCompact DisplayMode = iota
	DisplayExpanded
)

// String returns the display mode name.
func (m DisplayMode) String() string {
	switch m {
	case DisplayCompact:
		return "Compact"
	case DisplayExpanded:
		return "Expanded"
	default:
		return "Unknown"
	}
}

// Toggle returns the other display mode.
func (m DisplayMode) Toggle() DisplayMode {
	if m == DisplayExpanded {
		return DisplayCompact
	}
	return DisplayExpanded
}

// State is a read-only snapshot of the controller.
type State struct {
	Phase    Phase
	Track    *Track
	Position time.Duration
	Duration time.Duration
	Mode     DisplayMode
	Message  string // user-facing error, set in PhaseError
	Dragging bool
}

// HasTrack reports whether a track is current.
func (s State) HasTrack() bool {
	return s.Track != nil
}
