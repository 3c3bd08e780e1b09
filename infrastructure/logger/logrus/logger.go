// ABOUTME: Logger implementation backed by sirupsen/logrus with JSON output
// ABOUTME: Optionally tees to a lumberjack-rotated log file

package logrus

import (
	"io"
	"os"

	lr "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger
type Options struct {
	// Level is a logrus level name; unknown values fall back to info
	Level string

	// File enables rotated file output next to stdout
	File string

	// Output overrides stdout, mainly for tests
	Output io.Writer
}

// Logger implements the Logger interface using logrus
type Logger struct {
	entry *lr.Logger
	file  *lumberjack.Logger
}

// New creates a JSON logger
func New(opts Options) *Logger {
	base := lr.New()
	base.SetFormatter(&lr.JSONFormatter{})

	level, err := lr.ParseLevel(opts.Level)
	if err != nil {
		level = lr.InfoLevel
	}
	base.SetLevel(level)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	l := &Logger{entry: base}
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(out, l.file)
	}
	base.SetOutput(out)

	return l
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Error(msg)
}

// Close flushes and closes the rotated log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
