// Package log provides structured logging for the evmcore interpreter.
// It wraps log/slog with small conveniences such as per-subsystem child
// loggers and a step-trace helper the interpreter calls once per
// dispatched opcode, rather than pulling in an external logging
// framework.
package log

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with evmcore-specific context.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute. This
// is the primary way subsystems (vm, state, ...) obtain their own
// contextual logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Step logs one interpreter dispatch cycle at DEBUG level: the program
// counter, the opcode about to execute, gas remaining after the opcode's
// gas has been charged but before its handler runs, and the current
// stack depth and memory size. vm.EVM.Run calls this once per opcode
// when given a non-nil Logger; it is a no-op at
// any level above Debug since slog skips disabled levels before
// formatting the attributes.
func (l *Logger) Step(pc uint64, op string, gasRemaining uint64, stackDepth int, memLen uint64) {
	l.inner.Debug("step",
		"pc", pc,
		"op", op,
		"gas", gasRemaining,
		"stackDepth", stackDepth,
		"memLen", memLen,
	)
}

// Fault logs a frame-ending failure at WARN level: the opcode that was
// executing, the program counter, and the error that aborted the
// frame. vm.EVM.Run calls this once, right before it burns the
// remaining gas and returns.
func (l *Logger) Fault(pc uint64, op string, err error) {
	l.inner.Warn("fault", "pc", pc, "op", op, "err", err)
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
