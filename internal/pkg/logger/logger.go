package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the process-wide structured logger
var Logger = logrus.New()

type appNameHook struct {
	appName string
}

// Levels implements logrus.Hook
func (h *appNameHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook
func (h *appNameHook) Fire(entry *logrus.Entry) error {
	entry.Data["app"] = h.appName
	return nil
}

// Init configures output, level and formatter. Unknown levels fall back to info.
func Init(appName, level string) {
	Logger.SetOutput(os.Stdout)

	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Logger.Warnf("Invalid LOG_LEVEL '%s', defaulting to INFO", level)
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)

	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	Logger.AddHook(&appNameHook{appName: appName})
}

// WithField is a shorthand for Logger.WithField
func WithField(key string, value interface{}) *logrus.Entry {
	return Logger.WithField(key, value)
}

// WithFields is a shorthand for Logger.WithFields
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}
