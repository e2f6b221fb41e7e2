// Package log provides the language server's logger.
//
// A Logger is created once at startup, handed to the components that log,
// and closed on shutdown. A nil *Logger is valid and discards everything.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes component-prefixed lines to an output.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
}

// New returns a Logger writing to w. Passing nil disables logging.
func New(w io.Writer) *Logger {
	return &Logger{out: w}
}

// Open returns a Logger appending to the file at path. The caller must Close it.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return &Logger{out: f, closer: f}, nil
}

// Close releases the underlying file, if the Logger owns one.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = nil
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// Enabled returns true if logging is enabled.
func (l *Logger) Enabled() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out != nil
}

func (l *Logger) printf(prefix, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out != nil {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	}
}

// Debug writes an unprefixed log message.
func (l *Logger) Debug(format string, args ...any) {
	l.printf("", format, args...)
}

// Server writes a server-prefixed log message.
func (l *Logger) Server(format string, args ...any) {
	l.printf("[server] ", format, args...)
}

// Parse writes a parse-prefixed log message.
func (l *Logger) Parse(format string, args ...any) {
	l.printf("[parse] ", format, args...)
}
