// Package logger is a thin layer over log/slog that lets callers carry log
// attributes and muting through a context.Context. The retry and batch
// packages log through logger.Get(ctx), so an application can attach
// correlation attributes once (via With) and have every retry attempt and
// task failure tagged with them.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// contextKey is an unexported type for context keys to avoid collisions with
// other packages using the same string values.
type contextKey string

const (
	mutedKey  contextKey = "muted"
	valuesKey contextKey = "values"
)

// configMutex serializes calls to ConfigureLogging, which mutates the global
// default logger.
var configMutex sync.Mutex //nolint:gochecknoglobals

// Options configures logging for the application embedding this library.
type Options struct {
	// JSON selects the JSON handler; the default is the text handler.
	JSON bool
	// MinLevel is the minimum level to emit.
	MinLevel slog.Level
	// Output is the destination writer. Defaults to os.Stdout.
	Output io.Writer
}

// ConfigureLogging installs a slog default logger built from opts and returns
// it. It is safe to call from multiple goroutines; calls are serialized.
func ConfigureLogging(opts Options) *slog.Logger {
	configMutex.Lock()
	defer configMutex.Unlock()

	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	var handler slog.Handler

	if opts.JSON {
		handler = slog.NewJSONHandler(opts.Output, &slog.HandlerOptions{
			Level: opts.MinLevel,
		})
	} else {
		handler = slog.NewTextHandler(opts.Output, &slog.HandlerOptions{
			Level: opts.MinLevel,
		})
	}

	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger
}

// WithMuted returns a context that suppresses (or re-enables) all output from
// loggers obtained through Get. Useful for high-frequency callers such as
// polling loops where per-attempt retry logs would be noise.
func WithMuted(ctx context.Context, muted bool) context.Context {
	return context.WithValue(ctx, mutedKey, muted)
}

// isMuted reports whether the context has muting enabled.
func isMuted(ctx context.Context) bool {
	v, ok := ctx.Value(mutedKey).(bool)

	return ok && v
}

// With returns a new context carrying the given slog key-value pairs. Loggers
// obtained from the returned context via Get include these attributes.
func With(ctx context.Context, values ...any) context.Context {
	if len(values) == 0 && ctx != nil {
		// Corner case, don't bother creating a new context.
		return ctx
	}

	if ctx == nil {
		ctx = context.Background()
	}

	vals := append(getValues(ctx), values...)

	return context.WithValue(ctx, valuesKey, vals)
}

// getValues retrieves attributes added via With. Returns nil if none.
func getValues(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}

	vals, ok := ctx.Value(valuesKey).([]any)
	if !ok {
		return nil
	}

	return vals
}

// nullLogger discards everything. Returned by Get for muted contexts so
// callers never need a nil check.
var nullLogger = slog.New(&nullHandler{}) //nolint:gochecknoglobals

// Get returns a logger for the given context. Attributes attached via With
// are applied; a muted context yields a logger that discards all output.
// The context argument is variadic only so call sites without a context can
// write logger.Get().
func Get(ctx ...context.Context) *slog.Logger {
	realCtx := context.Background()
	if len(ctx) > 0 && ctx[0] != nil {
		realCtx = ctx[0]
	}

	if isMuted(realCtx) {
		return nullLogger
	}

	logger := slog.Default()

	if vals := getValues(realCtx); vals != nil {
		logger = logger.With(vals...)
	}

	return logger
}

// nullHandler implements slog.Handler and drops every record.
type nullHandler struct{}

func (n *nullHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (n *nullHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (n *nullHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return n
}

func (n *nullHandler) WithGroup(_ string) slog.Handler {
	return n
}
