package oopslog

import "context"

type locationKey struct{}

type lineageKey struct{}

// Location is the subset of pkg/trace.Location oopslog needs to log: it is
// duplicated here rather than imported to keep oopslog dependency-free of
// pkg/trace (pkg/trace depends on oopslog, not the reverse).
type Location struct {
	File  string
	Line  int
	Label string
}

// WithLocation returns a context carrying loc, picked up by LocationHandler.
func WithLocation(ctx context.Context, loc Location) context.Context {
	return context.WithValue(ctx, locationKey{}, loc)
}

func locationFromContext(ctx context.Context) (Location, bool) {
	loc, ok := ctx.Value(locationKey{}).(Location)

	return loc, ok
}

// WithLineage returns a context carrying the goroutine lineage id (the
// synthetic "thread-N" id an aggregator assigns a Store), picked up by
// LocationHandler.
func WithLineage(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, lineageKey{}, id)
}

func lineageFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(lineageKey{}).(string)

	return id, ok
}
