package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance. It discards everything until Init is called.
var Log = zerolog.Nop()

// Init configures the global logger with a human-readable console writer.
// level is a zerolog level name ("debug", "info", ...); w defaults to stderr.
func Init(level string, w io.Writer) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}

	Log = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    w != os.Stderr,
	}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return nil
}

// WithField returns a child logger carrying key=value on every entry.
func WithField(key, value string) zerolog.Logger {
	return Log.With().Str(key, value).Logger()
}

// Debug starts a debug-level entry.
func Debug() *zerolog.Event {
	return Log.Debug()
}

// Info starts an info-level entry.
func Info() *zerolog.Event {
	return Log.Info()
}

// Warn starts a warn-level entry.
func Warn() *zerolog.Event {
	return Log.Warn()
}

// Error starts an error-level entry.
func Error() *zerolog.Event {
	return Log.Error()
}

// Fatal starts a fatal-level entry; the process exits after Msg.
func Fatal() *zerolog.Event {
	return Log.Fatal()
}
