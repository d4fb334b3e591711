// Package obslog provides the structured logger shared by every long-lived
// component of the coordination kernel.
package obslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type (
	Logger struct {
		zerolog.Logger
	}

	LoggerOptions struct {
		Debug bool
	}

	logLevel string
)

const (
	DebugLevel logLevel = "DEBUG"
	InfoLevel  logLevel = "INFO"
	WarnLevel  logLevel = "WARN"
	ErrorLevel logLevel = "ERROR"
)

// NewLogger builds a root logger with the kernel's field naming convention.
func NewLogger(options LoggerOptions) *Logger {
	var output io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if options.Debug {
		level = zerolog.DebugLevel
	}

	zerolog.TimestampFieldName = "T"
	zerolog.LevelFieldName = "L"
	zerolog.MessageFieldName = "M"
	zerolog.LevelDebugValue = string(DebugLevel)
	zerolog.LevelInfoValue = string(InfoLevel)
	zerolog.LevelWarnValue = string(WarnLevel)
	zerolog.LevelErrorValue = string(ErrorLevel)

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{logger}
}

// SpawnForService returns a child logger tagged with the owning component's
// name, e.g. "scheduler", "broadcaster", "transport".
func (l *Logger) SpawnForService(serviceName string) *Logger {
	return &Logger{l.With().Str("service", serviceName).Logger()}
}

// SpawnForContext returns a child logger tagged with a job/request pair,
// the unit of work most kernel log lines are scoped to.
func (l *Logger) SpawnForContext(jobID string, reqID string) *Logger {
	return &Logger{l.With().Str("jobID", jobID).Str("reqID", reqID).Logger()}
}
