// internal/player/mock.go
package player

import "time"

// Mock is a test double for the transport. It records every call.
type Mock struct {
	state     State
	position  time.Duration
	duration  time.Duration
	finished  bool
	playErr   error
	closed    bool
	playCalls []string
	seekCalls []time.Duration
	stopCalls int
}

// NewMock creates a new mock transport for testing.
func NewMock() *Mock {
	return &Mock{state: Stopped}
}

func (m *Mock) Play(url string) error {
	m.playCalls = append(m.playCalls, url)
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	m.position = 0
	m.finished = false
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.state = Stopped
	m.position = 0
	m.duration = 0
	m.finished = false
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Seek(pos time.Duration) {
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) State() State { return m.state }

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) Finished() bool { return m.finished }

func (m *Mock) Close() error {
	m.closed = true
	m.state = Stopped
	return nil
}

// Test helpers

func (m *Mock) SetPlayError(err error) { m.playErr = err }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) PlayCalls() []string { return m.playCalls }

func (m *Mock) SeekCalls() []time.Duration { return m.seekCalls }

func (m *Mock) StopCalls() int { return m.stopCalls }

func (m *Mock) Closed() bool { return m.closed }

// SimulateFinished simulates the stream reaching its end.
func (m *Mock) SimulateFinished() {
	m.finished = true
	m.position = m.duration
}

// SimulateExit simulates the backend going away under a stream.
func (m *Mock) SimulateExit() { m.state = Stopped }

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
