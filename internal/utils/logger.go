package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates the application logger. Level comes from LOG_LEVEL
// (defaults to info), output is JSON on stdout.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
