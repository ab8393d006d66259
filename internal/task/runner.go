// Package task runs named units of background work off the UI goroutine and
// hands their single terminal outcome back to it.
//
// Work runs on its own goroutine and reports through an outcome channel. The
// UI loop waits on that channel with WaitCmd and passes every OutcomeMsg to
// Deliver, which invokes the success or error callback on the UI goroutine.
// Because Cancel and Deliver both run on the UI goroutine, a result that
// arrives after Cancel is always dropped.
package task

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/llehouerou/hifi/internal/apperr"
)

const outcomeBufferSize = 32

// Work is a unit of background work. It must not touch UI state and should
// honor ctx where it can.
type Work func(ctx context.Context) (any, error)

// Callbacks turn a terminal outcome into a UI message.
// Either callback may be nil, in which case the outcome is consumed silently.
type Callbacks struct {
	OnSuccess func(v any) tea.Msg
	OnError   func(err *apperr.Error) tea.Msg
}

// Option configures a handle at Run time.
type Option func(*Handle)

// WithLabel sets the text shown for the task in the job bar.
func WithLabel(label string) Option {
	return func(h *Handle) { h.label = label }
}

// Outcome is what a finished work function produced.
type Outcome struct {
	handle *Handle
	value  any
	err    error
}

// OutcomeMsg carries an Outcome into the UI loop.
type OutcomeMsg Outcome

// Runner owns every in-flight handle.
type Runner struct {
	mu      sync.Mutex
	handles map[uuid.UUID]*Handle // tracked until delivered or cancelled
	live    map[uuid.UUID]*Handle // work function still running

	outcomes  chan Outcome
	closed    chan struct{}
	closeOnce sync.Once

	log *log.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		handles:  make(map[uuid.UUID]*Handle),
		live:     make(map[uuid.UUID]*Handle),
		outcomes: make(chan Outcome, outcomeBufferSize),
		closed:   make(chan struct{}),
		log:      logger,
	}
}

// Run schedules work on a new goroutine and returns its handle.
func (r *Runner) Run(name string, work Work, cb Callbacks, opts ...Option) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		id:      uuid.New(),
		name:    name,
		label:   name,
		started: time.Now(),
		status:  StatusRunning,
		cancel:  cancel,
		cb:      cb,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	r.mu.Lock()
	r.handles[h.id] = h
	r.live[h.id] = h
	r.mu.Unlock()

	r.log.Debug("task started", "task", name, "id", h.id)

	go func() {
		defer cancel()

		v, err := execute(ctx, work)
		r.mu.Lock()
		delete(r.live, h.id)
		r.mu.Unlock()
		close(h.done)

		if h.Status() == StatusCancelled {
			r.log.Debug("task result discarded", "task", name, "id", h.id)
			return
		}
		select {
		case r.outcomes <- Outcome{handle: h, value: v, err: err}:
		case <-r.closed:
		}
	}()

	return h
}

func execute(ctx context.Context, work Work) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task panicked: %v", p)
		}
	}()
	return work(ctx)
}

// Cancel requests cooperative cancellation. After it returns no callback for
// h will be delivered. Safe to call with nil or an already finished handle.
func (r *Runner) Cancel(h *Handle) {
	if h == nil {
		return
	}
	r.mu.Lock()
	delete(r.handles, h.id)
	r.mu.Unlock()

	if h.finish(StatusCancelled, nil, apperr.ErrCancelled) {
		r.log.Debug("task cancelled", "task", h.name, "id", h.id)
	}
	h.cancel()
}

// CancelAll cancels every tracked handle.
func (r *Runner) CancelAll() {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	for _, h := range handles {
		r.Cancel(h)
	}
}

// WaitCmd returns a command that blocks until the next outcome is available.
// The UI loop should issue it again after each OutcomeMsg.
func (r *Runner) WaitCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case o := <-r.outcomes:
			return OutcomeMsg(o)
		case <-r.closed:
			return nil
		}
	}
}

// Deliver runs the matching callback for an outcome on the caller's
// goroutine. Returns the callback's message, or nil when the outcome was
// suppressed (cancelled, already delivered, or no callback).
func (r *Runner) Deliver(msg OutcomeMsg) tea.Msg {
	h := msg.handle
	if h == nil {
		return nil
	}

	r.mu.Lock()
	_, tracked := r.handles[h.id]
	delete(r.handles, h.id)
	r.mu.Unlock()
	if !tracked {
		return nil
	}

	if msg.err != nil {
		ae := apperr.New(h.name, msg.err)
		if ae.Kind == apperr.KindCancelled {
			h.finish(StatusCancelled, nil, ae)
			return nil
		}
		if !h.finish(StatusFailed, nil, ae) {
			return nil
		}
		r.log.Warn("task failed", "task", h.name, "id", h.id, "kind", ae.Kind, "err", ae.Err)
		if h.cb.OnError == nil {
			return nil
		}
		return h.cb.OnError(ae)
	}

	if !h.finish(StatusCompleted, msg.value, nil) {
		return nil
	}
	r.log.Debug("task completed", "task", h.name, "id", h.id, "elapsed", time.Since(h.started))
	if h.cb.OnSuccess == nil {
		return nil
	}
	return h.cb.OnSuccess(msg.value)
}

// Active returns the tracked handles, oldest first.
func (r *Runner) Active() []*Handle {
	r.mu.Lock()
	handles := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		handles = append(handles, h)
	}
	r.mu.Unlock()

	slices.SortFunc(handles, func(a, b *Handle) int {
		return a.started.Compare(b.started)
	})
	return handles
}

// Len returns the number of tracked handles.
func (r *Runner) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// Drain waits until every work function, cancelled ones included, has
// returned, or until timeout elapses. Returns false on timeout.
func (r *Runner) Drain(timeout time.Duration) bool {
	r.mu.Lock()
	pending := make([]*Handle, 0, len(r.live))
	for _, h := range r.live {
		pending = append(pending, h)
	}
	r.mu.Unlock()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for _, h := range pending {
		select {
		case <-h.done:
		case <-timer.C:
			r.log.Warn("drain timed out", "pending", len(pending), "task", h.name)
			return false
		}
	}
	return true
}

// Close releases goroutines blocked on delivery. Call once at shutdown,
// after Drain.
func (r *Runner) Close() {
	r.closeOnce.Do(func() {
		close(r.closed)
	})
}
