package seqlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var Zero = NewZeroLogger("", "info", true)

// logFile is the currently opened log file, if any.
var logFile *os.File

func NewZeroLogger(filepath string, level string, pretty bool) *zerolog.Logger {
	file, writer := newWriter(filepath)
	if file != nil {
		logFile = file
	}
	return newZeroLogger(writer, level, pretty)
}

func newZeroLogger(writer io.Writer, level string, pretty bool) *zerolog.Logger {
	if pretty {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.RFC3339}
	}
	logger := zerolog.New(writer).With().Timestamp().Logger().Level(parseLevel(level))

	return &logger
}

// ReloadLogger reopens the log output. Empty filepath means os.Stdout.
func ReloadLogger(filepath string, level string, pretty bool) {
	oldFile := logFile
	logFile = nil
	Zero = NewZeroLogger(filepath, level, pretty)
	if oldFile != nil {
		_ = oldFile.Close()
	}
}

func UpdateZeroLogLevel(logLevel string) error {
	level := parseLevel(logLevel)
	zeroLogger := Zero.With().Logger().Level(level)
	Zero = &zeroLogger
	return nil
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
