package log

import (
	"context"
	"io"
	"log/slog"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// Output formats accepted by Setup.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatCloud   = "cloud"
)

// ErrAttr is a wrapper to pass err to slog.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level.
func ParseLevel(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, scierrors.NewValidationError("log-level", "must be one of debug, info, warn, error", level)
	}
}

// Setup installs the global provider for the given format and level.
// "console" and "json" use zerolog, "cloud" uses a slog JSON handler with
// Cloud Logging field names and cockroachdb stack traces.
func Setup(format, level string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var p LoggerProvider
	switch format {
	case FormatConsole, "":
		p = NewZerologProvider(w, true)
	case FormatJSON:
		p = NewZerologProvider(w, false)
	case FormatCloud:
		p = NewSlogProvider(w)
	default:
		return scierrors.NewValidationError("log-format", "must be one of console, json, cloud", format)
	}
	p.SetLevel(lvl)
	SetProvider(p)
	return nil
}

// SlogProvider is a LoggerProvider backed by log/slog.
type SlogProvider struct {
	level  *slog.LevelVar
	logger *slog.Logger
}

// NewSlogProvider creates a provider emitting Cloud Logging style JSON to w.
func NewSlogProvider(w io.Writer) *SlogProvider {
	level := &slog.LevelVar{}
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     level,
		// Replace attributes to convert to CloudLogging format.
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.LevelKey:
				attr = slog.Attr{Key: "severity", Value: attr.Value}
			case slog.MessageKey:
				attr = slog.Attr{Key: "message", Value: attr.Value}
			case slog.SourceKey:
				attr = slog.Attr{Key: "logging.googleapis.com/sourceLocation", Value: attr.Value}
			}
			return attr
		},
	}
	handler := WrapByErrFmtHandler(slog.NewJSONHandler(w, &ops))
	return &SlogProvider{level: level, logger: slog.New(handler)}
}

func (p *SlogProvider) GetLogger() Logger { return &SlogLogger{l: p.logger} }

func (p *SlogProvider) GetLoggerWithName(name string) Logger {
	return &SlogLogger{l: p.logger.With(ComponentKey, name)}
}

func (p *SlogProvider) SetLevel(level Level) { p.level.Set(slog.Level(level)) }

// SlogLogger adapts *slog.Logger to Logger.
type SlogLogger struct {
	l *slog.Logger
}

func (s *SlogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, slogArgs(fields)...) }
func (s *SlogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, slogArgs(fields)...) }
func (s *SlogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, slogArgs(fields)...) }
func (s *SlogLogger) Error(msg string, fields ...any) { s.l.Error(msg, slogArgs(fields)...) }

func (s *SlogLogger) With(fields ...any) Logger {
	return &SlogLogger{l: s.l.With(slogArgs(fields)...)}
}

func (s *SlogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// slogArgs turns a bare error argument into an ErrAttr so ErrFmtHandler can
// find it.
func slogArgs(fields []any) []any {
	out := make([]any, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		if err, ok := fields[i].(error); ok {
			out = append(out, ErrAttr(err))
			continue
		}
		out = append(out, fields[i])
		if i+1 < len(fields) {
			out = append(out, fields[i+1])
			i++
		}
	}
	return out
}
