// Package logger adapts logrus to the ports.Logger interface.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logrus routes structured log entries to a logrus.Logger on stderr.
// Diagnostics never mix with rendered explanations on stdout.
type Logrus struct {
	log *logrus.Logger
}

// New creates a logger; verbose enables debug level, otherwise only warnings
// and errors are emitted.
func New(verbose bool) *Logrus {
	return NewWithOutput(verbose, os.Stderr)
}

// NewWithOutput creates a logger writing to the given sink (tests).
func NewWithOutput(verbose bool, out io.Writer) *Logrus {
	log := logrus.New()
	log.SetOutput(out)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return &Logrus{log: log}
}

func (l *Logrus) Debug(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Debug(msg)
}

func (l *Logrus) Info(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Info(msg)
}

func (l *Logrus) Warn(msg string, fields map[string]interface{}) {
	l.log.WithFields(logrus.Fields(fields)).Warn(msg)
}

func (l *Logrus) Error(msg string, err error, fields map[string]interface{}) {
	entry := l.log.WithFields(logrus.Fields(fields))
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}
