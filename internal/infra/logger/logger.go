// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"promo_broadcast_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// run carries the fields shared by every component entry of this process.
var run = logrus.NewEntry(Log)

// Init configures the global logger for a broadcast run. Every entry returned by
// Component afterwards is tagged with the environment, run mode and recipient source.
func Init(cfg *config.AppConfig, mode, source string) {
	Log.SetOutput(os.Stdout)

	level, ok := parseLevel(cfg.LogLevel)
	Log.SetLevel(level)
	Log.SetFormatter(formatterFor(cfg.Environment))

	run = Log.WithFields(logrus.Fields{
		"env":    strings.ToLower(cfg.Environment),
		"mode":   strings.ToLower(strings.TrimSpace(mode)),
		"source": strings.ToLower(strings.TrimSpace(source)),
		"pid":    os.Getpid(),
	})
	if !ok {
		run.Warnf("Invalid log level '%s', defaulting to 'info'", cfg.LogLevel)
	}
	run.Debugf("Logger ready at level %s", level)
}

// parseLevel falls back to info for an empty or unknown level name.
func parseLevel(name string) (logrus.Level, bool) {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return logrus.InfoLevel, false
	}
	return level, true
}

func formatterFor(environment string) logrus.Formatter {
	switch strings.ToLower(strings.TrimSpace(environment)) {
	case "production", "staging":
		return &logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"}
	default:
		return &logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}
	}
}

// Component returns an entry of the global logger tagged with a component name.
func Component(name string) *logrus.Entry {
	return run.WithField("component", name)
}

// Discard returns an entry that writes nowhere. Used by tests.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
