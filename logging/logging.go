// Package logging builds slog loggers and adapts them to the recording
// hooks of package scribe.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jonwraymond/scribe/history"
	"github.com/jonwraymond/scribe/scribe"
)

// Level represents a log level.
type Level = slog.Level

// Log levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Format represents the log output format.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level Level

	// Format is the output format (text or json).
	Format Format

	// Output is the writer to send logs to. Defaults to os.Stderr.
	Output io.Writer

	// AddSource adds source file and line to log entries.
	AddSource bool
}

// DefaultConfig returns text output at info level on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// New creates a new slog.Logger with the given configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return slog.New(handler)
}

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses "debug", "info", "warn"/"warning" or "error" in any
// case. Unrecognized strings yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ParseFormat parses "text" or "json". Unrecognized strings yield FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// NewCallLogger returns a scribe.LogFunc that writes one record per
// completed call at the given level.
func NewCallLogger(logger *slog.Logger, level Level) scribe.LogFunc {
	return func(objectName string, call *history.MethodCall, methodHistory []*history.FunctionCall, objectHistory []*history.MethodCall) {
		ctx := context.Background()
		if !logger.Enabled(ctx, level) {
			return
		}
		logger.LogAttrs(ctx, level, "method call",
			slog.String("object", objectName),
			slog.String("method", call.Name),
			slog.Int("arg_count", len(call.Call.Args)),
			slog.Any("return_value", call.Call.ReturnValue),
			slog.Int64("duration_ns", call.Call.Time.Nanoseconds()),
			slog.Int("method_calls", len(methodHistory)),
			slog.Int("object_calls", len(objectHistory)),
		)
	}
}

// Logf adapts logger to scribe.Logger; messages are written at debug level.
func Logf(logger *slog.Logger) scribe.Logger {
	return slogLogger{logger: logger}
}

type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Logf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
