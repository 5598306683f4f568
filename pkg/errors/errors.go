// Package errors provides structured error reporting for the pull-to-refresh
// packages.
//
// The state machine itself never returns errors from event handlers: bad
// input is ignored and misbehaving callbacks are recovered. Those conditions
// are still worth surfacing, so they are routed through a replaceable
// [Handler] instead.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindCallback indicates a panic inside an onRefresh or onInfinite
	// callback.
	KindCallback
	// KindTrace indicates a malformed replay trace.
	KindTrace
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindCallback:
		return "callback"
	case KindTrace:
		return "trace"
	default:
		return "unknown"
	}
}

// PullError represents a structured error raised while driving a list.
type PullError struct {
	// Op is the operation that failed (e.g., "pull.Config").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Index is the position of the offending event for KindTrace errors.
	Index int
	// State is the machine state a failing callback was invoked from.
	State string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PullError) Error() string {
	switch {
	case e.Kind == KindTrace:
		return fmt.Sprintf("%s [%s] event=%d: %v", e.Op, e.Kind, e.Index, e.Err)
	case e.State != "":
		return fmt.Sprintf("%s [%s] state=%s: %v", e.Op, e.Kind, e.State, e.Err)
	default:
		return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
	}
}

func (e *PullError) Unwrap() error {
	return e.Err
}

// Handler receives reported errors.
type Handler interface {
	HandleError(err *PullError)
}

// HandlerFunc adapts a function to [Handler].
type HandlerFunc func(err *PullError)

// HandleError calls f(err).
func (f HandlerFunc) HandleError(err *PullError) { f(err) }
