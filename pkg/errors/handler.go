package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   Handler = &LogHandler{}
)

// SetHandler installs h as the receiver of reported errors and returns the
// handler it replaced. A nil h restores a default LogHandler.
//
//	defer errors.SetHandler(errors.SetHandler(h))
func SetHandler(h Handler) Handler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := handler
	handler = h
	return prev
}

// CurrentHandler returns the installed handler.
func CurrentHandler() Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report stamps err with the current time when it has none and passes it to
// the installed handler.
func Report(err *PullError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	CurrentHandler().HandleError(err)
}

// RecoverCallback turns a panic raised by a caller-supplied callback into a
// KindCallback report naming the state the machine was in. It must be
// deferred directly:
//
//	defer errors.RecoverCallback("pull.onRefresh", state)
func RecoverCallback(op string, state fmt.Stringer) {
	r := recover()
	if r == nil {
		return
	}
	err := &PullError{
		Op:         op,
		Kind:       KindCallback,
		Err:        panicCause(r),
		StackTrace: callerStack(4),
	}
	if state != nil {
		err.State = state.String()
	}
	Report(err)
}

func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("callback panicked: %w", err)
	}
	return fmt.Errorf("callback panicked: %v", r)
}

// callerStack formats the goroutine's stack, skipping skip frames
// (runtime.Callers counts itself as frame zero).
func callerStack(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
