// Package logger provides module-labelled loggers so every component's output
// carries the component name.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var base = newBase()

func newBase() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})
	return l
}

// New returns an entry labelled with the given module name.
func New(module string) *logrus.Entry {
	return base.WithField("module", module)
}

// SetLevel adjusts the level of every logger handed out by New.
func SetLevel(level logrus.Level) {
	base.SetLevel(level)
}
