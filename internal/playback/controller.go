// Package playback holds the player bar state machine. The Controller owns the
// single current-track slot and is the only code that drives the transport.
package playback

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/llehouerou/hifi/internal/apperr"
	"github.com/llehouerou/hifi/internal/errmsg"
	"github.com/llehouerou/hifi/internal/player"
	"github.com/llehouerou/hifi/internal/task"
)

// TaskResolve is the task name used for stream resolution.
const TaskResolve = "resolve-audio"

// Resolver turns a track ID into a playable stream URL.
type Resolver interface {
	Resolve(ctx context.Context, trackID string) (string, error)
}

// ResolvedMsg is delivered when a resolve task succeeds.
type ResolvedMsg struct {
	TrackID string
	URL     string
}

// ResolveFailedMsg is delivered when a resolve task fails.
type ResolveFailedMsg struct {
	TrackID string
	Err     *apperr.Error
}

// Controller is the player bar state machine.
//
// Mutating methods are meant to be called from the UI goroutine. State and
// Subscribe are safe from any goroutine.
type Controller struct {
	mu sync.RWMutex

	transport player.Interface
	resolver  Resolver
	runner    *task.Runner
	log       *log.Logger

	phase    Phase
	track    *Track
	position time.Duration
	duration time.Duration
	mode     DisplayMode
	message  string
	attached bool

	dragging bool
	dragPos  time.Duration

	resolving *task.Handle

	subsMu sync.RWMutex
	subs   []*Subscription
	closed bool
}

// New creates a controller in PhaseIdle. A nil logger discards output.
func New(transport player.Interface, resolver Resolver, runner *task.Runner, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		transport: transport,
		resolver:  resolver,
		runner:    runner,
		log:       logger,
	}
}

// Request makes t the current track.
//
// Requesting the current track resumes it when paused and does nothing when
// it is already playing or loading. Any other request releases the transport,
// cancels the previous resolve task and starts resolving t.
func (c *Controller) Request(t Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.track != nil && c.track.ID == t.ID {
		switch c.phase {
		case PhasePaused:
			c.resumeLocked()
			return
		case PhasePlaying, PhaseLoading:
			return
		}
	}

	c.releaseLocked()

	prev := c.track
	t.StreamURL = ""
	c.track = &t
	c.position = 0
	c.duration = 0
	c.message = ""
	c.setPhaseLocked(PhaseLoading)
	c.notifyTrackLocked(prev, c.track)

	id := t.ID
	c.resolving = c.runner.Run(TaskResolve, func(ctx context.Context) (any, error) {
		return c.resolver.Resolve(ctx, id)
	}, task.Callbacks{
		OnSuccess: func(v any) tea.Msg {
			url, _ := v.(string)
			return ResolvedMsg{TrackID: id, URL: url}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			return ResolveFailedMsg{TrackID: id, Err: err}
		},
	}, task.WithLabel("Loading "+t.Title))

	c.log.Debug("track requested", "id", id, "title", t.Title)
}

// Update applies resolve results. It reports whether msg was consumed.
func (c *Controller) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ResolvedMsg:
		c.Attach(msg.TrackID, msg.URL)
		return true
	case ResolveFailedMsg:
		var err error
		if msg.Err != nil {
			err = msg.Err
		}
		c.Fail(msg.TrackID, err)
		return true
	}
	return false
}

// Attach starts the transport on a resolved stream. Results for a track that
// is no longer loading are ignored.
func (c *Controller) Attach(trackID, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loadingLocked(trackID) {
		c.log.Debug("stale resolve result ignored", "id", trackID)
		return
	}
	c.resolving = nil

	if url == "" {
		c.failLocked(errors.New("empty stream url"))
		return
	}

	resolved := c.track.WithStream(url)
	c.track = &resolved

	if err := c.transport.Play(url); err != nil {
		c.failLocked(err)
		return
	}
	c.attached = true
	c.setPhaseLocked(PhasePlaying)
}

// Fail moves a loading track to PhaseError without touching the transport.
func (c *Controller) Fail(trackID string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loadingLocked(trackID) {
		return
	}
	c.resolving = nil
	c.failLocked(err)
}

func (c *Controller) loadingLocked(trackID string) bool {
	return c.phase == PhaseLoading && c.track != nil && c.track.ID == trackID
}

func (c *Controller) failLocked(err error) {
	c.log.Warn("track failed to load", "id", c.track.ID, "err", err)
	c.message = errmsg.TrackLoadFailed
	c.setPhaseLocked(PhaseError)
}

// Toggle flips between playing and paused. Toggling after the stream ended
// restarts it from the beginning.
func (c *Controller) Toggle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhasePlaying:
		c.transport.Pause()
		c.setPhaseLocked(PhasePaused)
	case PhasePaused:
		c.resumeLocked()
	}
}

func (c *Controller) resumeLocked() {
	if c.transport.Finished() {
		if err := c.transport.Play(c.track.StreamURL); err != nil {
			c.failLocked(err)
			return
		}
		c.position = 0
	} else {
		c.transport.Resume()
	}
	c.setPhaseLocked(PhasePlaying)
}

// Seek jumps to pos, clamped to [0, duration]. Ignored until a stream is
// attached and its duration is known.
func (c *Controller) Seek(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(pos)
}

// SeekBy seeks relative to the displayed position.
func (c *Controller) SeekBy(delta time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seekLocked(c.position + delta)
}

func (c *Controller) seekLocked(pos time.Duration) {
	// Without a duration there is no range to clamp into.
	if !c.phase.IsActive() || c.duration <= 0 {
		return
	}
	pos = c.clamp(pos)
	c.transport.Seek(pos)
	c.position = pos
}

func (c *Controller) clamp(pos time.Duration) time.Duration {
	return max(0, min(pos, c.duration))
}

// BeginDrag starts a user scrub at pos. While dragging the displayed position
// is pinned and ticks do not move it.
func (c *Controller) BeginDrag(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.phase.IsActive() || c.duration <= 0 {
		return
	}
	c.dragging = true
	c.dragPos = c.clamp(pos)
}

// DragTo moves the scrub handle.
func (c *Controller) DragTo(pos time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dragging {
		c.dragPos = c.clamp(pos)
	}
}

// DragBy starts a scrub at the current position if needed and moves it by
// delta.
func (c *Controller) DragBy(delta time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		if !c.phase.IsActive() || c.duration <= 0 {
			return
		}
		c.dragging = true
		c.dragPos = c.position
	}
	c.dragPos = c.clamp(c.dragPos + delta)
}

// EndDrag releases the scrub and seeks to the dragged position.
func (c *Controller) EndDrag() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return
	}
	c.dragging = false
	c.seekLocked(c.dragPos)
}

// Dragging reports whether a scrub is in progress.
func (c *Controller) Dragging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dragging
}

// Tick polls the transport for position and duration. When the stream has
// ended the controller parks in PhasePaused at the end.
func (c *Controller) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.phase.IsActive() {
		return
	}
	if c.attached && c.transport.State() == player.Stopped {
		c.log.Warn("player stopped under an active track", "id", c.track.ID)
		c.attached = false
		c.dragging = false
		c.message = errmsg.PlaybackStopped
		c.setPhaseLocked(PhaseError)
		return
	}
	if d := c.transport.Duration(); d > 0 {
		c.duration = d
	}
	if !c.dragging && c.duration > 0 {
		c.position = c.clamp(c.transport.Position())
	}
	if c.phase == PhasePlaying && c.transport.Finished() {
		c.position = c.duration
		c.setPhaseLocked(PhasePaused)
	}
}

// Close stops the transport, cancels the resolve task and returns to
// PhaseIdle with no current track.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.releaseLocked()
	prev := c.track
	c.track = nil
	c.position = 0
	c.duration = 0
	c.message = ""
	c.setPhaseLocked(PhaseIdle)
	if c.mode != DisplayCompact {
		c.mode = DisplayCompact
		c.notifyModeLocked()
	}
	if prev != nil {
		c.notifyTrackLocked(prev, nil)
	}
}

// releaseLocked stops the attached stream and cancels an in-flight resolve.
func (c *Controller) releaseLocked() {
	if c.attached {
		c.transport.Stop()
		c.attached = false
	}
	if c.resolving != nil {
		c.runner.Cancel(c.resolving)
		c.resolving = nil
	}
	c.dragging = false
}

// ToggleDisplayMode flips the player bar between compact and expanded.
func (c *Controller) ToggleDisplayMode() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = c.mode.Toggle()
	c.notifyModeLocked()
}

// State returns a snapshot.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := State{
		Phase:    c.phase,
		Position: c.position,
		Duration: c.duration,
		Mode:     c.mode,
		Message:  c.message,
		Dragging: c.dragging,
	}
	if c.dragging {
		s.Position = c.dragPos
	}
	if c.track != nil {
		t := *c.track
		s.Track = &t
	}
	return s
}

// Subscribe registers for state, track and mode events.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.end()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Shutdown closes the player bar, ends every subscription and closes the
// transport.
func (c *Controller) Shutdown() error {
	c.Close()

	c.subsMu.Lock()
	if c.closed {
		c.subsMu.Unlock()
		return nil
	}
	c.closed = true
	for _, sub := range c.subs {
		sub.end()
	}
	c.subs = nil
	c.subsMu.Unlock()

	return c.transport.Close()
}

func (c *Controller) setPhaseLocked(p Phase) {
	if c.phase == p {
		return
	}
	prev := c.phase
	c.phase = p
	c.log.Debug("phase changed", "from", prev, "to", p)
	c.broadcast(StateChange{Previous: prev, Current: p})
}

func (c *Controller) notifyTrackLocked(prev, cur *Track) {
	c.broadcast(TrackChange{Previous: copyTrack(prev), Current: copyTrack(cur)})
}

func (c *Controller) notifyModeLocked() {
	c.broadcast(ModeChange{Mode: c.mode})
}

func (c *Controller) broadcast(e any) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.deliver(e)
	}
}

func copyTrack(t *Track) *Track {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
