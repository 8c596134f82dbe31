package core

import (
	"log"
	"os"
)

// Logger is the diagnostic sink components use for non-fatal conditions
// encountered during a replay, e.g. a commit whose diff touches no content.
// It carries only the one level the replay driver actually emits; unlike the
// teacher's pipeline, this program has no multi-level analysis components
// that would warrant Info/Error/Critical severities of their own.
type Logger interface {
	Warnf(string, ...interface{})
}

// DefaultLogger is the default logger, wrapping the standard log package.
type DefaultLogger struct {
	W *log.Logger
}

// NewLogger returns a configured default logger, writing to stderr.
func NewLogger() *DefaultLogger {
	return &DefaultLogger{W: log.New(os.Stderr, "[WARN] ", log.LstdFlags)}
}

// Warnf writes to the "warning" logger with printf-style formatting.
func (d *DefaultLogger) Warnf(f string, v ...interface{}) { d.W.Printf(f, v...) }
