package player

// State is what the transport believes it is doing. It only changes through
// Play, Pause, Resume and Stop, except that a transport whose backend went
// away (mpv exited or its IPC socket closed) falls back to Stopped on its
// own. The end of a stream keeps Playing with Finished reporting true.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	}
	return "Unknown"
}

// IsActive reports whether a stream is attached.
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
