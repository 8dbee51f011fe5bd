// Package oopslog wraps log/slog with a Handler that injects the active
// trace Location (file:line, goroutine lineage id) into every record logged
// during a trace operation, mirroring how the teacher's
// pkg/observability.TracingHandler injects OpenTelemetry span context.
package oopslog

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	attrFile    = "trace_file"
	attrLine    = "trace_line"
	attrLabel   = "trace_label"
	attrLineage = "trace_lineage"
	attrService = "service"
)

// LocationHandler is an slog.Handler that injects the Location and lineage
// attributes carried on ctx (see WithLocation/WithLineage) into every
// record, in addition to whatever the wrapped Handler already does.
type LocationHandler struct {
	inner slog.Handler
}

// NewLocationHandler wraps inner, pre-attaching service as a top-level
// attribute the way NewTracingHandler pre-attaches service/env/mode.
func NewLocationHandler(inner slog.Handler, service string) *LocationHandler {
	return &LocationHandler{
		inner: inner.WithAttrs([]slog.Attr{slog.String(attrService, service)}),
	}
}

// Enabled delegates to the inner handler.
func (h *LocationHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle adds location/lineage attributes found on ctx, then delegates.
func (h *LocationHandler) Handle(ctx context.Context, record slog.Record) error {
	if loc, ok := locationFromContext(ctx); ok {
		record.AddAttrs(
			slog.String(attrFile, loc.File),
			slog.Int(attrLine, loc.Line),
			slog.String(attrLabel, loc.Label),
		)
	}

	if lineage, ok := lineageFromContext(ctx); ok {
		record.AddAttrs(slog.String(attrLineage, lineage))
	}

	if err := h.inner.Handle(ctx, record); err != nil {
		return fmt.Errorf("location handler: %w", err)
	}

	return nil
}

// WithAttrs returns a new LocationHandler with additional attributes on the
// inner handler.
func (h *LocationHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LocationHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup returns a new LocationHandler with a group prefix on the inner
// handler.
func (h *LocationHandler) WithGroup(name string) slog.Handler {
	return &LocationHandler{inner: h.inner.WithGroup(name)}
}
