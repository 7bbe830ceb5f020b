package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is set by InitLogger.
var Log *logrus.Logger

// InitLogger configures the JSON logger used across the service.
// An unknown level falls back to info.
func InitLogger(level string) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	Log = logger
	return logger
}
