package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a task handle.
type Status int

const (
	StatusRunning Status = iota
	StatusCompleted
	StatusFailed
	StatusCancelled
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// IsTerminal returns true once the handle can no longer change state.
func (s Status) IsTerminal() bool {
	return s != StatusRunning
}

// Handle is a cancellable reference to one in-flight unit of work.
// Only the Runner mutates it; callers keep it to cancel or inspect.
type Handle struct {
	id      uuid.UUID
	name    string
	label   string
	started time.Time

	mu     sync.Mutex
	status Status
	result any
	err    error

	cancel context.CancelFunc
	cb     Callbacks
	done   chan struct{} // closed when the work function returns
}

// ID returns the unique handle identifier.
func (h *Handle) ID() uuid.UUID { return h.id }

// Name returns the task name (e.g. "resolve-audio").
func (h *Handle) Name() string { return h.name }

// Label returns the human readable description shown in the job bar.
func (h *Handle) Label() string { return h.label }

// Started returns when the work was scheduled.
func (h *Handle) Started() time.Time { return h.started }

// Status returns the current status.
func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Result returns the success payload, if any.
func (h *Handle) Result() any {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.result
}

// Err returns the failure, if any.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Done is closed when the work function has returned, cancelled or not.
func (h *Handle) Done() <-chan struct{} { return h.done }

// finish moves a running handle to a terminal status.
// Returns false if the handle was already terminal (e.g. cancelled).
func (h *Handle) finish(status Status, result any, err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status.IsTerminal() {
		return false
	}
	h.status = status
	h.result = result
	h.err = err
	return true
}
