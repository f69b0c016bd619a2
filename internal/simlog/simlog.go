// Package simlog is the simulator's structured logger: a single
// package-level logger, leveled helpers, and structured fields instead of
// formatted strings.
//
// Trace-level output is off by default; SetTrace enables it.
package simlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: false})
	return l
}

// SetTrace toggles per-event trace logging.
func SetTrace(enabled bool) {
	if enabled {
		log.SetLevel(logrus.TraceLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
}

// Fields is a shorthand alias so callers don't need to import logrus.
type Fields = logrus.Fields

func Trace(msg string, f Fields) { log.WithFields(f).Trace(msg) }
func Debug(msg string, f Fields) { log.WithFields(f).Debug(msg) }
func Info(msg string, f Fields)  { log.WithFields(f).Info(msg) }
func Warn(msg string, f Fields)  { log.WithFields(f).Warn(msg) }
func Error(msg string, f Fields) { log.WithFields(f).Error(msg) }
