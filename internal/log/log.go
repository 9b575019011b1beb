// Package log builds the zerolog loggers used across the library and holds
// the process default logger.
package log

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Standard attribute keys.
const (
	ComponentKey = "component"
	ObjectKey    = "object"
	ObjectIDKey  = "object_id"
	BackendKey   = "backend"
	PTypeKey     = "ptype"
	RefCountKey  = "refcount"
	ThreadsKey   = "threads"
)

var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	defaultLogger.Store(&l)
}

// New creates a logger writing to w. level is parsed with zerolog.ParseLevel
// ("" means info); format is FormatJSON or FormatConsole.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "invalid log level %q", level)
		}
		lvl = parsed
	}

	switch format {
	case "", FormatJSON:
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Nop(), errors.Newf("invalid log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// Default returns the process logger. It never returns nil.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault replaces the process logger.
func SetDefault(l zerolog.Logger) {
	defaultLogger.Store(&l)
}

// Component returns the default logger tagged with a component name.
func Component(name string) *zerolog.Logger {
	l := Default().With().Str(ComponentKey, name).Logger()
	return &l
}

// Nop returns a logger that discards everything; handy in tests.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
