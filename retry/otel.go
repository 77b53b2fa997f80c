package retry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// recordAttemptEvent attaches a failed attempt to the span already in the
// caller's context, if there is one and it is recording. The library never
// starts spans of its own; it only annotates whatever trace the host
// application is running.
func recordAttemptEvent(ctx context.Context, attempt uint, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.AddEvent("retry.attempt_failed", trace.WithAttributes(
		attribute.Int("retry.attempt", int(attempt)), //nolint:gosec // G115: attempt counts stay small
		attribute.String("retry.error", err.Error()),
	))
}
