package errors

import (
	"github.com/rs/zerolog"

	"github.com/go-drift/pullrefresh/pkg/logging"
)

// LogHandler is a Handler that writes through zerolog.
type LogHandler struct {
	// Verbose attaches stack traces to log entries.
	Verbose bool
	// Logger overrides the global logger when set.
	Logger *zerolog.Logger
}

func (h *LogHandler) logger() *zerolog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return logging.Logger()
}

// HandleError logs a PullError. Config problems are warnings, everything
// else is an error.
func (h *LogHandler) HandleError(err *PullError) {
	if err == nil {
		return
	}
	l := h.logger()
	evt := l.Error()
	if err.Kind == KindConfig {
		evt = l.Warn()
	}
	evt = evt.Str("op", err.Op).Stringer("kind", err.Kind).AnErr("cause", err.Err)
	switch {
	case err.Kind == KindTrace:
		evt = evt.Int("index", err.Index)
	case err.State != "":
		evt = evt.Str("state", err.State)
	}
	if h.Verbose && err.StackTrace != "" {
		evt = evt.Str("stack", err.StackTrace)
	}
	evt.Msg("pullrefresh error")
}
