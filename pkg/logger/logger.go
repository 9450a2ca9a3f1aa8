// Package logger provides the process-wide structured logger.
package logger

import (
	"sync"

	"github.com/phuslu/log"
)

var (
	mu sync.Mutex
	lg = log.Logger{
		Level:  log.InfoLevel,
		Writer: &log.ConsoleWriter{ColorOutput: true},
	}
)

// Init configures the global logger. If logPath is non-empty, log lines are
// appended to that file instead of the console. Verbose enables debug level.
func Init(logPath string, verbose bool) error {
	mu.Lock()
	defer mu.Unlock()

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	if logPath != "" {
		lg = log.Logger{
			Level: level,
			Writer: &log.FileWriter{
				Filename:     logPath,
				EnsureFolder: true,
			},
		}
		return nil
	}
	lg = log.Logger{
		Level:  level,
		Writer: &log.ConsoleWriter{ColorOutput: true},
	}
	return nil
}

// Close flushes and releases the log sink.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if fw, ok := lg.Writer.(*log.FileWriter); ok {
		fw.Close()
	}
}

// Debug logs a debug message.
func Debug(format string, v ...interface{}) {
	lg.Debug().Msgf(format, v...)
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	lg.Info().Msgf(format, v...)
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	lg.Warn().Msgf(format, v...)
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	lg.Error().Msgf(format, v...)
}

// Expectation logs one recorded expectation outcome as a structured line.
func Expectation(description string, passed bool, detail string) {
	e := lg.Info()
	if !passed {
		e = lg.Warn()
	}
	e.Bool("passed", passed).Str("detail", detail).Msg(description)
}

// CaseStatus logs a test case terminal status as a structured line.
func CaseStatus(name, status string, durationMs int64) {
	lg.Info().Str("case", name).Str("status", status).Int64("durationMs", durationMs).Msg("case finished")
}
