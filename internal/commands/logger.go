package commands

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a stderr logger: warnings by default, then info, debug
// and trace for each -v.
func NewLogger(verbosity int) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: verbosity < 2,
	})
	logger.SetLevel(levelFor(verbosity))
	return logger
}

func levelFor(verbosity int) logrus.Level {
	switch {
	case verbosity <= 0:
		return logrus.WarnLevel
	case verbosity == 1:
		return logrus.InfoLevel
	case verbosity == 2:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
