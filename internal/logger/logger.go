// Package logger builds the shared slog.Backend that every subsystem gets
// its named Logger from, the way pkg/server.Server hands out "TABLE" and
// "GAME" loggers from one backend.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/decred/slog"
)

// Config controls where logs go and how verbose they are.
type Config struct {
	Output     io.Writer // defaults to os.Stderr
	DebugLevel string    // trace, debug, info, warn, error, critical, off
}

// Backend wraps a slog.Backend and remembers the configured level so every
// subsequent Logger() call gets it applied consistently.
type Backend struct {
	backend *slog.Backend
	level   slog.Level
}

// New builds a Backend from cfg.
func New(cfg Config) (*Backend, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	level := slog.LevelInfo
	if cfg.DebugLevel != "" {
		l, ok := slog.LevelFromString(cfg.DebugLevel)
		if !ok {
			return nil, fmt.Errorf("logger: unknown debug level %q", cfg.DebugLevel)
		}
		level = l
	}

	return &Backend{
		backend: slog.NewBackend(out),
		level:   level,
	}, nil
}

// Logger returns a named logger from the backend with the configured level
// applied (spec.md's ambient logging stack, modeled on pkg/server.Server's
// per-subsystem loggers).
func (b *Backend) Logger(subsystem string) slog.Logger {
	log := b.backend.Logger(subsystem)
	log.SetLevel(b.level)
	return log
}
