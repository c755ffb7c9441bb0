// Package log provides the small leveled logger used across the syncer.
// Loggers are cheap to derive, so download code creates one per song to
// prefix every message with the song id.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level filters log output.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes timestamped, level-tagged lines to a single writer.
// All methods are safe for concurrent use.
type Logger struct {
	mu     *sync.Mutex
	out    io.Writer
	level  Level
	prefix string
}

// New creates a logger writing to out, dropping messages below level.
func New(out io.Writer, level Level) *Logger {
	return &Logger{mu: &sync.Mutex{}, out: out, level: level}
}

// Default returns a stderr logger at info level.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// WithPrefix derives a logger that tags every line, sharing the parent's
// writer and lock.
func (l *Logger) WithPrefix(prefix string) *Logger {
	clone := *l
	clone.prefix = prefix
	return &clone
}

// ForSong derives a logger prefixed with the song id, e.g. "#3327".
func (l *Logger) ForSong(id fmt.Stringer) *Logger {
	return l.WithPrefix("#" + id.String())
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	ts := time.Now().Format("2006-01-02 15:04:05")

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.prefix != "" {
		fmt.Fprintf(l.out, "%s %-5s %s %s\n", ts, level, l.prefix, msg)
	} else {
		fmt.Fprintf(l.out, "%s %-5s %s\n", ts, level, msg)
	}
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }
