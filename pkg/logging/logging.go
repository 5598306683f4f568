// Package logging holds the process-wide structured logger used by the
// pull-to-refresh packages.
//
// Library code never configures output itself. Hosts call [Init] once at
// startup (the CLI does this from its root command) and every package that
// was not handed an explicit logger falls back to [Logger].
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
)

// Init replaces the global logger with a console logger writing to w at the
// given level. Unparsable levels fall back to info. A nil writer means stderr.
func Init(level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	lvl := ParseLevel(level)

	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminal(w)}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// Set installs l as the global logger. Tests use this with zerolog.Nop or a
// buffer-backed logger.
func Set(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the current global logger.
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// ParseLevel parses a zerolog level name, returning info for unknown input.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
