package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

type noopLogger struct{}

// NoOp returns a logger that discards every entry. Services default to it so
// logging stays optional at construction time.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (l noopLogger) WithContext(context.Context) interfaces.Logger { return l }

// WithFields attaches structured fields when the implementation supports the
// optional FieldsLogger extension. Nil loggers and empty maps pass through.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}
	return logger
}

// ModuleLogger resolves a named child logger from the provider, falling back
// to NoOp when no provider is configured.
func ModuleLogger(provider interfaces.LoggerProvider, name string) interfaces.Logger {
	if provider == nil {
		return NoOp()
	}
	logger := provider.GetLogger(strings.TrimSpace(name))
	if logger == nil {
		return NoOp()
	}
	return logger
}
