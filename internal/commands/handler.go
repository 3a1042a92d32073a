package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

const defaultHandlerTimeout = 30 * time.Second

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with the builder's shared concerns:
// message validation, context and timeout management, logging, and error
// categorisation.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
}

// NewHandler creates a handler that satisfies go-command's Commander
// interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: defaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if err := command.ValidateMessage(msg); err != nil {
		return wrapValidationError(err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return wrapContextError(err)
	}

	fields := map[string]any{
		"command": command.GetMessageType(msg),
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("command.execute.start")

	if err := h.exec(ctx, msg); err != nil {
		logger.Error("command.execute.failed", "error", err)
		return wrapExecuteError(err)
	}

	if err := ctx.Err(); err != nil {
		logger.Error("command.execute.context_error", "error", err)
		return wrapContextError(err)
	}

	logger.Info("command.execute.success")
	return nil
}

// WithTimeout overrides the default execution timeout; zero disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets the operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}
