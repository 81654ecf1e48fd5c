// Package logger holds the process-wide zerolog logger.
//
// Call Init once from main, then Get or For wherever a logger is needed.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum level (trace, debug, info, warn, error). Unknown or
	// empty values fall back to info.
	Level string
	// Pretty switches to coloured console output for local development.
	Pretty bool
	// Service is stamped on every entry as "service".
	Service string
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu          sync.RWMutex
	instance    zerolog.Logger
	initialized bool
)

// Init builds the process logger. Later calls are ignored until Reset.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl := ParseLevel(opts.Level)
	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	instance = ctx.Logger()
	initialized = true
	return instance
}

// Get returns the process logger. Panics if Init has not been called yet.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		panic("logger: Get() called before Init()")
	}
	return instance
}

// For returns the process logger tagged with component, e.g. "payments".
func For(component string) zerolog.Logger {
	return Get().With().Str("component", component).Logger()
}

// Reset discards the process logger. Tests only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = zerolog.Logger{}
	initialized = false
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
