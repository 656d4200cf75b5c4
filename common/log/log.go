// Package log wires up github.com/op/go-logging for the scene daemon:
// one leveled logger per component prefix, a coloured stderr backend by
// default, syslog when requested and available.
package log

import (
	stdlog "log"
	"log/syslog"
	"os"

	"github.com/op/go-logging"
)

var syslogFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.6s} ▶ %{message}`,
)

var stderrFormat = logging.MustStringFormatter(
	`%{color}scene ▶ %{message}%{color:reset}`,
)

// SetupLogging configures the process-wide logging backend and returns
// a logger scoped to prefix. trySyslog attempts a syslog backend first
// and falls back to stderr when the syslog daemon is unreachable. The
// SCENE_LOG_LEVEL environment variable overrides defaultLevel.
func SetupLogging(prefix string, defaultLevel logging.Level, trySyslog bool) *logging.Logger {
	leveled := logging.AddModuleLevel(newFormattedBackend(prefix, trySyslog))
	leveled.SetLevel(levelFromEnv(defaultLevel), prefix)
	logging.SetBackend(leveled)
	return logging.MustGetLogger(prefix)
}

// newFormattedBackend picks the syslog or stderr backend and binds the
// format string to that backend alone, leaving the package-global
// formatter untouched. SetupLogging installs the result as the
// process-wide backend, so a later SetupLogging call replaces it for
// every logger.
func newFormattedBackend(prefix string, trySyslog bool) logging.Backend {
	if trySyslog {
		if sb, err := logging.NewSyslogBackendPriority(prefix, syslog.LOG_NOTICE); err == nil {
			// Panics escape through the stdlib logger; point it at
			// syslog too so they land in the same place.
			stdlog.SetOutput(sb.Writer)
			return logging.NewBackendFormatter(sb, syslogFormat)
		}
	}
	stderr := logging.NewLogBackend(os.Stderr, prefix, 0)
	return logging.NewBackendFormatter(stderr, stderrFormat)
}

// levelFromEnv resolves SCENE_LOG_LEVEL, falling back to defaultLevel
// when the variable is unset or names no known level.
func levelFromEnv(defaultLevel logging.Level) logging.Level {
	if name := os.Getenv("SCENE_LOG_LEVEL"); name != "" {
		if level, err := logging.LogLevel(name); err == nil {
			return level
		}
	}
	return defaultLevel
}
