// Package jlog is a small leveled, component-tagged logger, trimmed down from
// the structured logger noisefs hand-rolls for its own infrastructure rather
// than pulling in zap or logrus. The scheduler has the same shape of need —
// cheap, dependency-free lifecycle logging — without noisefs's field
// sanitization (the scheduler never logs user data, only worker ids and
// queue sizes).
package jlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a log severity.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes leveled, component-tagged lines to an io.Writer.
type Logger struct {
	mu        sync.Mutex
	level     Level
	output    io.Writer
	component string
}

// New returns a Logger at the given level, writing to os.Stderr.
func New(level Level, component string) *Logger {
	return &Logger{level: level, output: os.Stderr, component: component}
}

// SetOutput redirects subsequent log lines; tests use this to capture output.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.output, "%s [%s] %s: %s\n", time.Now().Format(time.RFC3339Nano), level, l.component, msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.log(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.log(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.log(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.log(Error, format, args...) }
