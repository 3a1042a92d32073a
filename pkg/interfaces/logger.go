package interfaces

import "context"

// Logger is the leveled logging contract used across the builder runtime.
// It matches the surface exposed by github.com/goliatone/go-logger so host
// applications can plug that package in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers. Implementations may return a
// shared instance for every name or scope children per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields. Providers supporting it return a new logger that emits the fields
// on every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
