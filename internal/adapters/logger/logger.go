package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"stockSignals/internal/ports"
)

// LogLevel defines the logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
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

// ParseLevel converts a string level to LogLevel, defaulting to Info.
func ParseLevel(levelStr string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Format selects the console formatter.
type Format string

const (
	FormatText     Format = "text"
	FormatPrefixed Format = "prefixed"
)

// Options configures a LogrusLogger.
type Options struct {
	Level  LogLevel
	Format Format
	Out    io.Writer // Defaults to os.Stderr
}

// LogrusLogger implements ports.Logger on top of logrus.
type LogrusLogger struct {
	entry *logrus.Entry
}

var _ ports.Logger = (*LogrusLogger)(nil)

// New creates a logrus-backed logger.
func New(opts Options) *LogrusLogger {
	l := logrus.New()
	l.SetLevel(opts.Level.logrusLevel())
	if opts.Out != nil {
		l.SetOutput(opts.Out)
	} else {
		l.SetOutput(os.Stderr)
	}

	switch opts.Format {
	case FormatPrefixed:
		l.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: opts.Out != nil})
	}

	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// WithPrefix returns a logger whose entries carry the given prefix field.
func (l *LogrusLogger) WithPrefix(prefix string) *LogrusLogger {
	return &LogrusLogger{entry: l.entry.WithField("prefix", prefix)}
}

func (l *LogrusLogger) with(ctx context.Context, fields []ports.Fields) *logrus.Entry {
	e := l.entry.WithContext(ctx)
	if len(fields) > 0 && fields[0] != nil {
		e = e.WithFields(logrus.Fields(fields[0]))
	}
	return e
}

// Debug logs a message at Debug level.
func (l *LogrusLogger) Debug(ctx context.Context, msg string, fields ...ports.Fields) {
	l.with(ctx, fields).Debug(msg)
}

// Info logs a message at Info level.
func (l *LogrusLogger) Info(ctx context.Context, msg string, fields ...ports.Fields) {
	l.with(ctx, fields).Info(msg)
}

// Warn logs a message at Warning level.
func (l *LogrusLogger) Warn(ctx context.Context, msg string, fields ...ports.Fields) {
	l.with(ctx, fields).Warn(msg)
}

// Error logs an error message at Error level.
func (l *LogrusLogger) Error(ctx context.Context, err error, msg string, fields ...ports.Fields) {
	l.with(ctx, fields).WithError(err).Error(msg)
}
