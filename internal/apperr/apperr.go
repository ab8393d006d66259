// Package apperr classifies failures of background work into the small
// taxonomy the UI knows how to present.
package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"net"
	"net/url"
)

// Kind tags an error with how the UI should treat it.
type Kind int

const (
	KindUnknown   Kind = iota
	KindNetwork        // service unreachable, timeout, bad status
	KindNotFound       // empty or no-match result
	KindDecode         // malformed payload
	KindCancelled      // suppressed, never shown
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "NetworkError"
	case KindNotFound:
		return "NotFoundError"
	case KindDecode:
		return "DecodeError"
	case KindCancelled:
		return "CancelledError"
	case KindUnknown:
		return "Error"
	default:
		return "Error"
	}
}

// Sentinels wrapped by service packages.
var (
	ErrNetwork   = errors.New("network error")
	ErrNotFound  = errors.New("not found")
	ErrDecode    = errors.New("decode error")
	ErrCancelled = errors.New("cancelled")
)

// Error is a classified failure of a named task.
type Error struct {
	Kind Kind
	Task string
	Err  error
}

// New classifies err and wraps it for the given task.
// Returns nil if err is nil. Already classified errors keep their kind.
func New(task string, err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return &Error{Kind: ae.Kind, Task: task, Err: ae.Err}
	}
	return &Error{Kind: Classify(err), Task: task, Err: err}
}

func (e *Error) Error() string {
	if e.Task == "" {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Task + ": " + e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Classify maps an arbitrary error onto a Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var ae *Error
	switch {
	case errors.As(err, &ae):
		return ae.Kind
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrDecode), errors.Is(err, image.ErrFormat):
		return KindDecode
	case errors.Is(err, ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return KindDecode
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return KindNetwork
	}

	return KindUnknown
}

// IsCancelled reports whether err should be silently dropped.
func IsCancelled(err error) bool {
	return Classify(err) == KindCancelled
}
