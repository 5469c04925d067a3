package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerOptions configures the process-wide slog logger.
type LoggerOptions struct {
	Level     string
	Path      string // rotating log file; empty means stdout only
	Component string
	JSON      bool
}

var logLevel = new(slog.LevelVar)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a level name to slog. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLogLevel changes the level of the logger installed by SetupLogger.
func SetLogLevel(level string) {
	logLevel.Set(ParseLevel(level))
}

// SetupLogger installs the default slog logger. The returned closer flushes
// the log file, if any.
func SetupLogger(opts LoggerOptions) (io.Closer, error) {
	logLevel.Set(ParseLevel(opts.Level))

	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}
	var fileErr error

	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			fileErr = fmt.Errorf("create log directory: %w", err)
		} else {
			rotator := &lumberjack.Logger{
				Filename:   opts.Path,
				MaxSize:    10, // megabytes
				MaxBackups: 5,
				MaxAge:     28, // days
				Compress:   true,
			}
			w = io.MultiWriter(os.Stdout, rotator)
			closer = rotator
		}
	}

	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	logger := slog.New(handler)
	if opts.Component != "" {
		logger = logger.With("component", opts.Component)
	}
	slog.SetDefault(logger)

	if fileErr != nil {
		slog.Warn("log file disabled", "error", fileErr)
	}
	return closer, fileErr
}
