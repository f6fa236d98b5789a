// logger.go provides the SDK's diagnostic sink.

package core

import (
	"fmt"
	"log"
)

// Logger writes SDK diagnostics. A nil *Logger or one without an output is
// silent, so callers never need to check before logging.
type Logger struct {
	out *log.Logger
}

// NewLogger wraps out. A nil out yields a silent logger.
func NewLogger(out *log.Logger) *Logger {
	return &Logger{out: out}
}

// Log writes an informational line.
func (l *Logger) Log(format string, args ...any) {
	l.print("Log", format, args...)
}

// Warn writes a warning line.
func (l *Logger) Warn(format string, args ...any) {
	l.print("Warn", format, args...)
}

// Error writes an error line.
func (l *Logger) Error(format string, args ...any) {
	l.print("Error", format, args...)
}

func (l *Logger) print(level, format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	l.out.Printf("Sentry Logger [%s]: %s", level, fmt.Sprintf(format, args...))
}
