// Package log is brightd's structured logger. It wraps logrus with the
// field helpers and error-aware entry points used across the application.
package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"brightd/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.RWMutex
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type options struct {
	out  io.Writer
	json bool
	file string
}

// Option configures a Logger.
type Option func(*options)

// WithOutput sends log output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithJSON switches to one JSON object per line.
func WithJSON() Option {
	return func(o *options) { o.json = true }
}

// WithFile additionally appends log output to the file at path.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// Logger writes leveled, structured entries.
type Logger struct {
	base   *logrus.Logger
	fields logrus.Fields
	file   *os.File
}

// NewLogger creates a logger. Without options it writes text to stdout.
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	l := &Logger{fields: logrus.Fields{}}
	out := o.out
	if o.file != "" {
		f, err := os.OpenFile(o.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.file, err)
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}

	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(logrus.DebugLevel)
	if o.json {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		base.SetFormatter(&textFormatter{})
	}
	l.base = base
	return l
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger carrying the given fields.
func (l *Logger) With(fields ...Field) *Logger {
	merged := make(logrus.Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}
	return &Logger{base: l.base, fields: merged, file: l.file}
}

// WithError returns a child logger describing err.
func (l *Logger) WithError(err error) *Logger {
	return l.With(errorFields(err)...)
}

func (l *Logger) Debug(msg string)                          { l.output(2, logrus.DebugLevel, msg) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.output(2, logrus.DebugLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Info(msg string)                           { l.output(2, logrus.InfoLevel, msg) }
func (l *Logger) Infof(format string, args ...interface{})  { l.output(2, logrus.InfoLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Warn(msg string)                           { l.output(2, logrus.WarnLevel, msg) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.output(2, logrus.WarnLevel, fmt.Sprintf(format, args...)) }
func (l *Logger) Error(msg string)                          { l.output(2, logrus.ErrorLevel, msg) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.output(2, logrus.ErrorLevel, fmt.Sprintf(format, args...)) }

// output emits msg; skip is the number of frames between the caller of
// interest and output.
func (l *Logger) output(skip int, level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !debugEnabled() {
		return
	}
	entry := l.base.WithFields(l.fields)
	if _, file, line, ok := runtime.Caller(skip); ok {
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	entry.Log(level, msg)
}

// SetDebug enables or disables debug output for every logger.
func SetDebug(debug bool) {
	mu.Lock()
	isDebug = debug
	mu.Unlock()
}

func debugEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return isDebug
}

// Configure replaces the package-level logger.
func Configure(opts ...Option) {
	l := NewLogger(opts...)
	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()
	if old != nil {
		old.Close()
	}
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Default returns the package-level logger.
func Default() *Logger {
	return current()
}

func Info(format string, args ...interface{}) {
	current().output(2, logrus.InfoLevel, fmt.Sprintf(format, args...))
}

func Infof(format string, args ...interface{}) {
	current().output(2, logrus.InfoLevel, fmt.Sprintf(format, args...))
}

// Debug logs a message with arguments
func Debug(msg string, args ...interface{}) {
	current().output(2, logrus.DebugLevel, fmt.Sprintf(msg, args...))
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	current().output(2, logrus.DebugLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	current().output(2, logrus.WarnLevel, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	current().output(2, logrus.ErrorLevel, fmt.Sprintf(format, args...))
}

// LogWithFields returns the package-level logger with fields attached.
func LogWithFields(fields ...Field) *Logger {
	return current().With(fields...)
}

// LogWithError returns the package-level logger describing err.
func LogWithError(err error) *Logger {
	return current().WithError(err)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	current().WithError(err).output(2, logrus.ErrorLevel, msg)
}

func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", errors.KindOf(err).String()),
	}
	var bErr *errors.BrightnessError
	if errors.As(err, &bErr) && bErr.Monitor() >= 0 {
		fields = append(fields, F("monitor", bErr.Monitor()))
	}
	var cErr *errors.ConfigError
	if errors.As(err, &cErr) && cErr.Param() != "" {
		fields = append(fields, F("param", cErr.Param()))
	}
	return fields
}

// textFormatter renders "[time] LEVEL: message key=value ..." lines.
type textFormatter struct{}

func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	level := strings.ToUpper(e.Level.String())
	if e.Level == logrus.WarnLevel {
		level = "WARN"
	}
	fmt.Fprintf(&b, "[%s] %s: %s", e.Time.Format("2006-01-02 15:04:05"), level, e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
