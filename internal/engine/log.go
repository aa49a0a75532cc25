package engine

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey is a distinct type for this package's context keys, to avoid
// collisions with keys set by other packages.
type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a context carrying l for the search to log progress
// through.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger attached by WithLogger, falling
// back to the package default so a search always has a valid logger even
// when the caller set up no context.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
