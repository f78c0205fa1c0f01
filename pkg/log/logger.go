// Package log builds the logrus loggers shared by md-toc commands.
package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to out at the given level. An invalid
// level logs a warning and falls back to info.
func New(levelStr string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", levelStr, err)
		return log
	}
	log.SetLevel(level)
	log.Debugf("Setting log level to: %s", level.String())
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
