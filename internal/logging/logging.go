package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates a console logrus.Logger with the provided level string.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(levelFromString(level))
	return logger
}

func levelFromString(value string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}
