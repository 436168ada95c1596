// Package cmdutil holds small helpers that don't belong to any one engine
// package. No other package of this module imports it.
package cmdutil

import (
	"context"
	"log/slog"
	"time"
)

// Span starts a timed unit of work, logged at Debug on completion via the
// returned end func, and at Error (with the elapsed duration) if the
// pointed-to error is non-nil when it runs.
func Span(ctx context.Context, logger *slog.Logger, operation string, attrs ...slog.Attr) (context.Context, func(err *error)) {
	start := time.Now()
	l := logger.With(slog.String("operation", operation))
	for _, a := range attrs {
		l = l.With(a)
	}
	l.DebugContext(ctx, "start")
	return ctx, func(err *error) {
		dur := time.Since(start)
		if err != nil && *err != nil {
			l.ErrorContext(ctx, "failed", slog.Duration("elapsed", dur), slog.Any("error", *err))
			return
		}
		l.DebugContext(ctx, "done", slog.Duration("elapsed", dur))
	}
}
