// Package logging holds the process-wide logrus logger.
//
// Diagnostics go to stderr so they never mix with report output on stdout.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	return l
}

// Configure sets the output and verbosity. verbose enables debug output.
func Configure(w io.Writer, verbose bool) {
	logger.SetOutput(w)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// For returns an entry tagged with the component name.
func For(component string) *logrus.Entry {
	return logger.WithField("component", component)
}

// Logger returns the underlying logger.
func Logger() *logrus.Logger {
	return logger
}
