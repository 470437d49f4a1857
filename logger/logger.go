// Package logger provides named, coloured component loggers.
package logger

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/mazesolver/config"
	"github.com/sirupsen/logrus"
)

const timeLayout = "2006-01-02 15:04:05"

var (
	ErrEmptyName = errors.New("logger name is empty")
	ErrNilWriter = errors.New("logger writer is nil")
)

// Logger writes leveled messages tagged with a component name.
type Logger struct {
	entry *logrus.Entry
}

// New creates a Logger that prefixes every line with name in the given colour.
func New(name, color string, w io.Writer) (*Logger, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	base := logrus.New()
	base.SetOutput(w)
	base.SetLevel(logrus.InfoLevel)
	base.SetFormatter(&formatter{name: strings.ToUpper(name), color: color})

	return &Logger{entry: base.WithField("component", name)}, nil
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

// formatter renders "<time> [NAME] [LEVEL] message".
type formatter struct {
	name  string
	color string
}

func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer

	level := strings.ToUpper(e.Level.String())
	levelColor := config.ColorGreen
	switch e.Level {
	case logrus.WarnLevel:
		levelColor = config.ColorYellow
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = config.ColorRed
	}

	fmt.Fprintf(&b, "%s %s[%s]%s %s[%s]%s %s\n",
		e.Time.Format(timeLayout),
		f.color, f.name, config.ColorReset,
		levelColor, level, config.ColorReset,
		e.Message,
	)
	return b.Bytes(), nil
}
