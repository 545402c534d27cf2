// Package logging implements leveled, structured logging on top of go-kit/log.
//
// Loggers may be obtained with GetLogger at any point, including package
// initialization; they start out discarding output and switch to the real
// backend once Initialize runs.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/pflag"
)

// ErrAlreadyInitialized is returned by a second call to Initialize.
var ErrAlreadyInitialized = errors.New("logging: already initialized")

var (
	backend = logBackend{
		baseLogger: log.NewNopLogger(),
		level:      LevelWarn,
	}

	_ pflag.Value = (*Level)(nil)
	_ pflag.Value = (*Format)(nil)
)

// Format is a logging output format.
type Format uint

const (
	FmtLogfmt Format = iota
	FmtJSON
)

func (f *Format) String() string {
	switch *f {
	case FmtLogfmt:
		return "logfmt"
	case FmtJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", uint(*f))
	}
}

func (f *Format) Set(s string) error {
	switch strings.ToLower(s) {
	case "logfmt":
		*f = FmtLogfmt
	case "json":
		*f = FmtJSON
	default:
		return fmt.Errorf("logging: invalid log format: '%s'", s)
	}
	return nil
}

func (f *Format) Type() string {
	return "[logfmt,json]"
}

// Level is a log level.
type Level uint

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) toOption() level.Option {
	switch l {
	case LevelDebug:
		return level.AllowDebug()
	case LevelInfo:
		return level.AllowInfo()
	case LevelWarn:
		return level.AllowWarn()
	default:
		return level.AllowError()
	}
}

func (l *Level) String() string {
	switch *l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", uint(*l))
	}
}

func (l *Level) Set(s string) error {
	switch strings.ToUpper(s) {
	case "DEBUG":
		*l = LevelDebug
	case "INFO":
		*l = LevelInfo
	case "WARN":
		*l = LevelWarn
	case "ERROR":
		*l = LevelError
	default:
		return fmt.Errorf("logging: invalid log level: '%s'", s)
	}
	return nil
}

func (l *Level) Type() string {
	return "[DEBUG,INFO,WARN,ERROR]"
}

// Logger is a module scoped logger.
type Logger struct {
	logger log.Logger
	module string
}

// Debug logs the message and key value pairs at the Debug log level.
func (l *Logger) Debug(msg string, keyvals ...any) {
	_ = level.Debug(l.logger).Log(append([]any{"msg", msg}, keyvals...)...)
}

// Info logs the message and key value pairs at the Info log level.
func (l *Logger) Info(msg string, keyvals ...any) {
	_ = level.Info(l.logger).Log(append([]any{"msg", msg}, keyvals...)...)
}

// Warn logs the message and key value pairs at the Warn log level.
func (l *Logger) Warn(msg string, keyvals ...any) {
	_ = level.Warn(l.logger).Log(append([]any{"msg", msg}, keyvals...)...)
}

// Error logs the message and key value pairs at the Error log level.
func (l *Logger) Error(msg string, keyvals ...any) {
	_ = level.Error(l.logger).Log(append([]any{"msg", msg}, keyvals...)...)
}

// With returns a clone of the logger with the provided key/value pairs added.
func (l *Logger) With(keyvals ...any) *Logger {
	return &Logger{
		logger: log.With(l.logger, keyvals...),
		module: l.module,
	}
}

// GetLogger creates a new logger instance tagged with module.
func GetLogger(module string) *Logger {
	return backend.getLogger(module)
}

// NewLogger builds a standalone logger that bypasses the global backend.
func NewLogger(w io.Writer, format Format, lvl Level, module string) (*Logger, error) {
	base, err := newBaseLogger(w, format, lvl)
	if err != nil {
		return nil, err
	}
	return &Logger{logger: log.With(base, "module", module), module: module}, nil
}

// Initialize sets up the global backend. A nil writer discards all output.
func Initialize(w io.Writer, format Format, lvl Level) error {
	backend.Lock()
	defer backend.Unlock()

	if backend.initialized {
		return ErrAlreadyInitialized
	}

	base, err := newBaseLogger(w, format, lvl)
	if err != nil {
		return err
	}

	backend.baseLogger = base
	backend.level = lvl
	backend.initialized = true

	for _, swap := range backend.earlyLoggers {
		swap.Swap(base)
	}
	backend.earlyLoggers = nil
	return nil
}

func newBaseLogger(w io.Writer, format Format, lvl Level) (log.Logger, error) {
	if w == nil {
		return log.NewNopLogger(), nil
	}

	var logger log.Logger
	w = log.NewSyncWriter(w)
	switch format {
	case FmtLogfmt:
		logger = log.NewLogfmtLogger(w)
	case FmtJSON:
		logger = log.NewJSONLogger(w)
	default:
		return nil, fmt.Errorf("logging: unsupported log format: %v", format)
	}

	logger = level.NewFilter(logger, lvl.toOption())
	return log.With(logger, "ts", log.DefaultTimestampUTC), nil
}

type logBackend struct {
	sync.Mutex

	baseLogger   log.Logger
	earlyLoggers []*log.SwapLogger
	level        Level

	initialized bool
}

func (b *logBackend) getLogger(module string) *Logger {
	b.Lock()
	defer b.Unlock()

	logger := b.baseLogger
	if !b.initialized {
		swap := &log.SwapLogger{}
		b.earlyLoggers = append(b.earlyLoggers, swap)
		logger = swap
	}

	keyvals := []any{"caller", log.Caller(4)}
	if module != "" {
		keyvals = append([]any{"module", module}, keyvals...)
	}
	return &Logger{
		logger: log.WithPrefix(logger, keyvals...),
		module: module,
	}
}
