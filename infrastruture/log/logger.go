// Package log provides the prefixed, colored component logger used by every service.
package log

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

const colorReset = "\033[0m"

// Logger writes "[PREFIX] [LEVEL] message" lines, the prefix painted in the component color.
type Logger struct {
	entry *logrus.Logger
}

// New creates a Logger for one component.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: strings.ToUpper(prefix), color: color})
	return &Logger{entry: l}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.entry.Info(msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.entry.Warn(msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.entry.Error(msg)
}

type prefixFormatter struct {
	prefix string
	color  string
}

func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(e.Level.String())
	if level == "WARNING" {
		level = "WARN"
	}

	prefix := fmt.Sprintf("[%s]", f.prefix)
	if f.color != "" {
		prefix = f.color + prefix + colorReset
	}

	return []byte(fmt.Sprintf("%s %s [%s] %s\n",
		e.Time.Format("2006/01/02 15:04:05"), prefix, level, e.Message)), nil
}
