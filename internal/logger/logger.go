// Package logger owns the process-wide structured logger shared by the CLI
// and the API server.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	mu            sync.Mutex
	defaultLogger *log.Logger
)

// Init replaces the default logger. format is "text", "json" or "logfmt";
// anything else falls back to text. A nil w writes to stderr.
func Init(level, format string, w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	l := log.NewWithOptions(w, log.Options{
		Level:           parseLevel(level),
		Formatter:       parseFormat(format),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	log.SetDefault(l)
	return l
}

func parseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func parseFormat(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// Get returns the default logger, initialising it at info level if needed.
func Get() *log.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l == nil {
		return Init("info", "text", nil)
	}
	return l
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, args ...any) {
	Get().Error(msg, args...)
	os.Exit(1)
}

// With returns a child logger carrying the given key/value pairs.
func With(args ...any) *log.Logger {
	return Get().With(args...)
}
