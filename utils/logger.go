package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func init() {
	// Packages log before main gets a chance to configure anything.
	InitLogger()
}

func InitLogger() {
	InfoLogger = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
}

// InitFileLogger sends both loggers to path. The dashboard uses it because
// the terminal belongs to the UI while it runs.
func InitFileLogger(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	InfoLogger = newLogger(f, logrus.InfoLevel)
	ErrorLogger = newLogger(f, logrus.ErrorLevel)
	return f, nil
}

// SetLevel parses lvl ("debug", "info", ...) and applies it to InfoLogger.
func SetLevel(lvl string) error {
	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return err
	}
	InfoLogger.SetLevel(level)
	return nil
}

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(level)
	return l
}
