package task

import (
	"context"
	"fmt"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/hifi/internal/apperr"
)

type doneMsg struct{ v any }

type failMsg struct{ err *apperr.Error }

func recordingCallbacks(calls *int) Callbacks {
	return Callbacks{
		OnSuccess: func(v any) tea.Msg {
			*calls++
			return doneMsg{v: v}
		},
		OnError: func(err *apperr.Error) tea.Msg {
			*calls++
			return failMsg{err: err}
		},
	}
}

func nextOutcome(t *testing.T, r *Runner) OutcomeMsg {
	t.Helper()
	msg := r.WaitCmd()()
	out, ok := msg.(OutcomeMsg)
	require.True(t, ok, "expected OutcomeMsg, got %T", msg)
	return out
}

func TestRunner_SuccessDeliveredOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		calls := 0
		h := r.Run("search", func(_ context.Context) (any, error) {
			return 42, nil
		}, recordingCallbacks(&calls))

		out := nextOutcome(t, r)
		got := r.Deliver(out)

		assert.Equal(t, doneMsg{v: 42}, got)
		assert.Equal(t, StatusCompleted, h.Status())
		assert.Equal(t, 42, h.Result())
		assert.Equal(t, 0, r.Len())

		// A second delivery of the same outcome is ignored.
		assert.Nil(t, r.Deliver(out))
		assert.Equal(t, 1, calls)
	})
}

func TestRunner_ErrorIsClassified(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		calls := 0
		h := r.Run("image-fetch", func(_ context.Context) (any, error) {
			return nil, fmt.Errorf("GET thumb: %w", apperr.ErrNetwork)
		}, recordingCallbacks(&calls))

		got := r.Deliver(nextOutcome(t, r))

		fm, ok := got.(failMsg)
		require.True(t, ok)
		assert.Equal(t, apperr.KindNetwork, fm.err.Kind)
		assert.Equal(t, "image-fetch", fm.err.Task)
		assert.Equal(t, StatusFailed, h.Status())
		assert.Equal(t, 1, calls)
	})
}

func TestRunner_PanicBecomesError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		calls := 0
		r.Run("resolve-audio", func(_ context.Context) (any, error) {
			panic("boom")
		}, recordingCallbacks(&calls))

		got := r.Deliver(nextOutcome(t, r))

		fm, ok := got.(failMsg)
		require.True(t, ok)
		assert.Equal(t, apperr.KindUnknown, fm.err.Kind)
		assert.Contains(t, fm.err.Error(), "boom")
	})
}

func TestRunner_CancelBeforeResultSuppressesDelivery(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		release := make(chan struct{})
		calls := 0
		h := r.Run("resolve-audio", func(_ context.Context) (any, error) {
			<-release // ignores ctx, like a blocking network call
			return "stream", nil
		}, recordingCallbacks(&calls))

		r.Cancel(h)
		assert.Equal(t, StatusCancelled, h.Status())

		close(release)
		<-h.Done()
		synctest.Wait()

		select {
		case o := <-r.outcomes:
			assert.Nil(t, r.Deliver(OutcomeMsg(o)))
		default:
		}
		assert.Equal(t, 0, calls)
		assert.Equal(t, 0, r.Len())
	})
}

func TestRunner_CancelAfterResultQueuedSuppressesDelivery(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		calls := 0
		h := r.Run("search", func(_ context.Context) (any, error) {
			return []string{"a"}, nil
		}, recordingCallbacks(&calls))

		out := nextOutcome(t, r)
		r.Cancel(h)

		assert.Nil(t, r.Deliver(out))
		assert.Equal(t, 0, calls)
		assert.Equal(t, StatusCancelled, h.Status())
	})
}

func TestRunner_CancelPropagatesToContext(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		var workErr error
		h := r.Run("search", func(ctx context.Context) (any, error) {
			<-ctx.Done()
			workErr = ctx.Err()
			return nil, workErr
		}, Callbacks{})

		r.Cancel(h)
		<-h.Done()

		assert.ErrorIs(t, workErr, context.Canceled)
		assert.ErrorIs(t, h.Err(), apperr.ErrCancelled)
	})
}

func TestRunner_ContextCanceledResultIsSilent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		calls := 0
		h := r.Run("search", func(_ context.Context) (any, error) {
			return nil, fmt.Errorf("ytdlp: %w", context.Canceled)
		}, recordingCallbacks(&calls))

		assert.Nil(t, r.Deliver(nextOutcome(t, r)))
		assert.Equal(t, 0, calls)
		assert.Equal(t, StatusCancelled, h.Status())
	})
}

func TestRunner_CancelNilAndFinishedHandles(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		r.Cancel(nil)

		h := r.Run("x", func(_ context.Context) (any, error) { return 1, nil }, Callbacks{})
		r.Deliver(nextOutcome(t, r))
		r.Cancel(h)

		assert.Equal(t, StatusCompleted, h.Status())
	})
}

func TestRunner_CancelAll(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		var handles []*Handle
		for range 3 {
			handles = append(handles, r.Run("wait", func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}, Callbacks{}))
		}
		require.Equal(t, 3, r.Len())

		r.CancelAll()
		synctest.Wait()

		assert.Equal(t, 0, r.Len())
		for _, h := range handles {
			assert.Equal(t, StatusCancelled, h.Status())
			<-h.Done()
		}
	})
}

func TestRunner_DrainWaitsForRunningWork(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		h := r.Run("capture", func(_ context.Context) (any, error) {
			time.Sleep(time.Second)
			return nil, nil
		}, Callbacks{})

		start := time.Now()
		assert.True(t, r.Drain(5*time.Second))
		assert.Equal(t, time.Second, time.Since(start))
		<-h.Done()
	})
}

func TestRunner_DrainTimesOut(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		release := make(chan struct{})
		h := r.Run("slow", func(_ context.Context) (any, error) {
			<-release
			return nil, nil
		}, Callbacks{})

		start := time.Now()
		assert.False(t, r.Drain(2*time.Second))
		assert.Equal(t, 2*time.Second, time.Since(start))

		close(release)
		<-h.Done()
	})
}

func TestRunner_DrainWaitsForCancelledWork(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		h := r.Run("capture", func(_ context.Context) (any, error) {
			time.Sleep(300 * time.Millisecond) // ignores ctx
			return nil, nil
		}, Callbacks{})
		r.CancelAll()
		assert.Equal(t, 0, r.Len())

		start := time.Now()
		assert.True(t, r.Drain(2*time.Second))
		assert.Equal(t, 300*time.Millisecond, time.Since(start))

		select {
		case <-h.Done():
		default:
			t.Fatal("drain returned before the work function")
		}
	})
}

func TestRunner_DrainWithNothingRunning(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		h := r.Run("search", func(_ context.Context) (any, error) {
			return nil, nil
		}, Callbacks{})
		<-h.Done()

		start := time.Now()
		assert.True(t, r.Drain(time.Second))
		assert.Equal(t, time.Duration(0), time.Since(start))
	})
}

func TestRunner_ActiveIsOldestFirst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		defer r.Close()

		block := func(ctx context.Context) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}
		r.Run("search", block, Callbacks{}, WithLabel("Searching \"lofi\""))
		time.Sleep(time.Millisecond)
		r.Run("resolve-audio", block, Callbacks{})

		active := r.Active()
		require.Len(t, active, 2)
		assert.Equal(t, "Searching \"lofi\"", active[0].Label())
		assert.Equal(t, "resolve-audio", active[1].Label())

		r.CancelAll()
	})
}

func TestRunner_CloseUnblocksWait(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		r := NewRunner(nil)
		cmd := r.WaitCmd()

		got := make(chan tea.Msg, 1)
		go func() { got <- cmd() }()
		synctest.Wait()

		r.Close()
		assert.Nil(t, <-got)
	})
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusRunning, "Running"},
		{StatusCompleted, "Completed"},
		{StatusFailed, "Failed"},
		{StatusCancelled, "Cancelled"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.status, got, tt.want)
		}
	}
	assert.False(t, StatusRunning.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}
