package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"
)

// Logger is the leveled logging interface passed to every component.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func parseLevel(s string) level {
	switch strings.ToLower(s) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

type implLogger struct {
	logger *log.Logger
	level  level
}

// New creates a Logger writing to stdout at the given level.
func New(levelName string) Logger {
	return NewWithWriter(levelName, os.Stdout)
}

// NewWithWriter creates a Logger writing to w; used by tests to capture output.
func NewWithWriter(levelName string, w io.Writer) Logger {
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  parseLevel(levelName),
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelDebug, "[DEBUG] "+msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelInfo, "[INFO] "+msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelWarn, "[WARN] "+msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.printf(levelError, "[ERROR] "+msg, args...)
}

func (l *implLogger) printf(at level, msg string, args ...interface{}) {
	if at >= l.level {
		l.logger.Printf(msg, args...)
	}
}
