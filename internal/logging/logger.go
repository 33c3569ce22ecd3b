// Package logging provides the leveled key/value logger used by the server.
//
// Output goes to stderr: stdout is reserved for the MCP protocol stream.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger provides structured logging for the viewer server
type Logger struct {
	prefix string
	debug  bool
	logger *log.Logger
}

// NewLogger creates a logger writing to stderr with the given prefix
func NewLogger(prefix string, debug bool) *Logger {
	return NewLoggerTo(os.Stderr, prefix, debug)
}

// NewLoggerTo creates a logger writing to w
func NewLoggerTo(w io.Writer, prefix string, debug bool) *Logger {
	return &Logger{
		prefix: prefix,
		debug:  debug,
		logger: log.New(w, fmt.Sprintf("[%s] ", prefix), log.Ldate|log.Ltime),
	}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return NewLoggerTo(io.Discard, "discard", false)
}

// With returns a child logger whose prefix is extended by name
func (l *Logger) With(name string) *Logger {
	child := *l
	child.prefix = l.prefix + "/" + name
	child.logger = log.New(l.logger.Writer(), fmt.Sprintf("[%s] ", child.prefix), l.logger.Flags())
	return &child
}

// Info logs an informational message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.logWithKV("INFO", msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.logWithKV("WARN", msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.logWithKV("ERROR", msg, keysAndValues...)
}

// Debug logs a debug message; dropped unless debug output is enabled
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.debug {
		return
	}
	l.logWithKV("DEBUG", msg, keysAndValues...)
}

func (l *Logger) logWithKV(level, msg string, keysAndValues ...interface{}) {
	kvStr := ""
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			kvStr += fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1])
		}
	}
	l.logger.Printf("[%s] %s%s", level, msg, kvStr)
}
