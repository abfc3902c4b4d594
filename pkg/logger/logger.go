// Package logger holds the process-wide structured logger, backed by zerolog.
// Call Init once from main; components receive the logger by value or call
// Get for the shared instance.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options selects the logger's output shape at startup.
type Options struct {
	// Level is the minimum level emitted: trace, debug, info, warn, error.
	// Anything unrecognised falls back to info.
	Level string
	// Pretty switches to the human console writer. Production runs with
	// Pretty false and emits one JSON object per line.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	shared      zerolog.Logger
	setup       sync.Once
	initialized bool
)

// Init builds the shared logger. Subsequent calls are no-ops and return the
// instance from the first call.
func Init(opts Options) zerolog.Logger {
	setup.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		level := parseLevel(opts.Level)
		zerolog.SetGlobalLevel(level)

		shared = zerolog.New(out).
			Level(level).
			With().
			Timestamp().
			Caller().
			Logger()
		initialized = true
	})
	return shared
}

// Get returns the shared logger. Panics when called before Init; that is a
// wiring bug, not a runtime condition.
func Get() zerolog.Logger {
	if !initialized {
		panic("logger: Get called before Init")
	}
	return shared
}

// Reset discards the shared instance so the next Init rebuilds it. Test use only.
func Reset() {
	setup = sync.Once{}
	shared = zerolog.Logger{}
	initialized = false
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
