// Package logging defines the structured-logging interface the rest of the
// project logs through, keeping the concrete backend swappable.
package logging

import "context"

// Logger is a context-aware structured logger. The variadic args are
// alternating key and value pairs:
//
//	log.Info(ctx, "starting server", "addr", addr)
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)

	// Warn records unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
