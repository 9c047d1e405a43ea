// Package logger builds the zerolog logger used by the command line tool.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

var (
	errUnknownLogLevel  = errors.New("unknown log level")
	errUnknownLogFormat = errors.New("unknown log format")
)

// GetLogger returns a logger writing to stderr.
func GetLogger(level, format string) (zerolog.Logger, error) {
	return New(os.Stderr, level, format)
}

// New returns a logger writing to w. The debug level adds caller and pid fields.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	var logLevel zerolog.Level
	switch level {
	case zerolog.LevelDebugValue:
		logLevel = zerolog.DebugLevel
	case zerolog.LevelInfoValue:
		logLevel = zerolog.InfoLevel
	case zerolog.LevelWarnValue:
		logLevel = zerolog.WarnLevel
	case zerolog.LevelErrorValue:
		logLevel = zerolog.ErrorLevel
	default:
		return zerolog.Logger{}, fmt.Errorf("log level %q: %w", level, errUnknownLogLevel)
	}

	var formatWriter io.Writer
	switch format {
	case FormatJSON:
		formatWriter = w
	case FormatText:
		formatWriter = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return zerolog.Logger{}, fmt.Errorf("log format %q: %w", format, errUnknownLogFormat)
	}

	if logLevel == zerolog.DebugLevel {
		return zerolog.New(formatWriter).
			Level(logLevel).
			With().
			Timestamp().
			Caller().
			Int("pid", os.Getpid()).Logger(), nil
	}
	return zerolog.New(formatWriter).
		Level(logLevel).
		With().
		Timestamp().
		Logger(), nil
}

// SetDefaultContextLogger installs the logger returned for contexts that carry none
// and returns it.
func SetDefaultContextLogger(level, format string) (zerolog.Logger, error) {
	l, err := GetLogger(level, format)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("get logger: %w", err)
	}
	zerolog.DefaultContextLogger = &l
	return l, nil
}
