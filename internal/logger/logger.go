// Package logger wraps zerolog the way kegliz/qplay's internal/logger does
// (renamed field names, structured contextual spawns), generalized from
// that teacher's per-service/per-request spawns to this compiler's
// per-pipeline-stage/per-compile-run spawns.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

type (
	Logger struct {
		zerolog.Logger
	}

	Options struct {
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

// New returns a root Logger writing structured JSON to stdout.
func New(options Options) *Logger {
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

	zl := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &Logger{zl}
}

// SpawnForStage returns a child logger tagged with the compiler pipeline
// stage emitting through it (e.g. "layer", "router", "smt", "optimizer",
// "codegen") so a run's log stream can be filtered per stage.
func (l *Logger) SpawnForStage(stage string) *Logger {
	return &Logger{l.With().Str("stage", stage).Logger()}
}

// SpawnForRun returns a child logger tagged with the compile run's
// identifier and, once known, the number of layers it is processing.
func (l *Logger) SpawnForRun(runID string, numLayers int) *Logger {
	return &Logger{l.With().Str("runID", runID).Int("numLayers", numLayers).Logger()}
}

// SpawnForRequest returns a child logger tagged with the status API's
// per-request sequence number and request ID, the progress-server analog
// of the teacher's own per-HTTP-request SpawnForContext.
func (l *Logger) SpawnForRequest(reqCount, reqID string) *Logger {
	return &Logger{l.With().Str("reqCount", reqCount).Str("reqID", reqID).Logger()}
}
