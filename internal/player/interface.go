// internal/player/interface.go
package player

import "time"

// Interface is the audio transport driven by the playback controller.
// Exactly one stream is attached at a time; Play replaces the previous one.
type Interface interface {
	Play(url string) error
	Stop()
	Pause()
	Resume()
	Seek(position time.Duration)
	State() State
	Position() time.Duration
	Duration() time.Duration
	// Finished reports whether the attached stream reached its end.
	Finished() bool
	Close() error
}

// Verify MPV implements Interface at compile time.
var _ Interface = (*MPV)(nil)
