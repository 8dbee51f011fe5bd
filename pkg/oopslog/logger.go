package oopslog

import (
	"io"
	"log/slog"
)

// New builds a *slog.Logger whose records carry Location/lineage attributes
// when present on the logging call's context, the way
// pkg/observability.buildLogger builds a *slog.Logger wrapped in
// TracingHandler.
func New(w io.Writer, service string, opts *slog.HandlerOptions) *slog.Logger {
	inner := slog.NewTextHandler(w, opts)

	return slog.New(NewLocationHandler(inner, service))
}

// Default is the package-wide logger pkg/trace logs mismatch diagnostics
// through. Tests and CLI startup may replace it with SetDefault.
var Default = New(io.Discard, "oopstrace", nil)

// SetDefault replaces Default.
func SetDefault(l *slog.Logger) {
	Default = l
}
