package trace

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"

	"github.com/resserops/oopstrace/pkg/oopslog"
)

type storeKey struct{}

// suppressedKey marks a context returned by an inactive Scope: Point has no
// level of its own (see the external interface in the package doc), so it
// inherits inertness from its lexically enclosing Scope. Without this
// marker, a Point called inside a disabled nested Scope would silently
// record against whatever Store an outer, active Scope left on the context.
type suppressedKey struct{}

func isSuppressed(ctx context.Context) bool {
	suppressed, _ := ctx.Value(suppressedKey{}).(bool)

	return suppressed
}

// Root returns a context carrying a fresh, empty Store. Concurrent goroutine
// lineages must each derive from their own call to Root (or from a context
// carrying no Store, on which Scope attaches a fresh one, see
// storeFromContext) rather than share one context: a Store has no internal
// synchronization, the same discipline Go asks of any non-concurrency-safe
// value handed to multiple goroutines.
func Root(ctx context.Context) context.Context {
	s := newStore()
	id := globalAggregator.register(s)

	ctx = context.WithValue(ctx, storeKey{}, s)

	return oopslog.WithLineage(ctx, id)
}

// storeFromContext returns the Store carried by ctx, lazily creating and
// attaching one if ctx does not carry one yet. The returned context must be
// used by the caller in place of ctx for this to have any effect; Scope and
// Point do this internally.
func storeFromContext(ctx context.Context) (context.Context, *Store) {
	if s, ok := ctx.Value(storeKey{}).(*Store); ok {
		return ctx, s
	}

	s := newStore()
	id := globalAggregator.register(s)

	ctx = context.WithValue(ctx, storeKey{}, s)

	return oopslog.WithLineage(ctx, id), s
}

// storeFromContextReadOnly returns the Store carried by ctx without
// modifying it, for callers (Table, Print, SubTable) that must not silently
// create one.
func storeFromContextReadOnly(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)

	return s, ok
}

// Scope opens a scope at the caller's call site, returning a context to pass
// to nested Scope/Point calls and a func to close the scope, typically via
// defer. If lvl is inactive (see active), Scope is a no-op: the store on ctx
// is untouched and the returned context instead marks bare Point calls
// nested directly inside it (not inside their own active nested Scope) as
// suppressed, since Point has no level of its own to judge independently.
func Scope(ctx context.Context, lvl Level) (context.Context, func()) {
	if !active(lvl) {
		return context.WithValue(ctx, suppressedKey{}, true), func() {}
	}

	pc, file, line, _ := runtime.Caller(1)
	loc := globalRegistry.publish(pc, "", file, line)

	// An active Scope clears any suppression inherited from an enclosing
	// inactive Scope: each Scope's own level is judged independently (see
	// active), so a more urgent nested Scope can resume recording even
	// inside a less urgent disabled one.
	ctx = context.WithValue(ctx, suppressedKey{}, false)

	ctx, s := storeFromContext(ctx)
	s.scopeBegin(loc.key())

	return ctx, func() { s.scopeEnd() }
}

// key returns the registry key this Location was published under. The
// registry's own Locations always carry it; lookup never blanks them. The
// anonymized copies built for display (see displayLocation) carry only
// AnonymousID, so key returns 0 for those.
func (l *Location) key() uintptr { return l.pc }

// PointOption configures a single Point call.
type PointOption func(*pointOptions)

// WithMemory requests a memory snapshot alongside this Point's interval.
func WithMemory() PointOption {
	return func(o *pointOptions) { o.sampleMemory = true }
}

// WithHandler registers a callback invoked synchronously with the Sample
// this Point just recorded, in addition to crediting the tree node.
func WithHandler(fn func(Sample)) PointOption {
	return func(o *pointOptions) { o.handler = fn }
}

// Point closes the current node's interval and advances to label's sibling
// slot under the same parent. It returns a *MismatchError if label's call
// site was reached without a lexically enclosing Scope activation in step
// with it (see MismatchError). Point has no level of its own: it is a no-op
// returning a nil error exactly when its nearest enclosing Scope on ctx is
// currently inactive.
func Point(ctx context.Context, label string, opts ...PointOption) error {
	if isSuppressed(ctx) {
		return nil
	}

	pc, file, line, _ := runtime.Caller(1)
	loc := globalRegistry.publish(pc, label, file, line)

	var o pointOptions
	for _, opt := range opts {
		opt(&o)
	}

	// A Store created here because ctx carries none is never attached back
	// to the caller: Point, unlike Scope, does not return a context. Call
	// Root (directly or via an enclosing Scope) before the first Point on a
	// goroutine lineage that needs its measurements to accumulate.
	_, s := storeFromContext(ctx)

	err := s.point(pc, loc, o)

	var mismatch *MismatchError
	if errors.As(err, &mismatch) {
		logMismatch(ctx, mismatch)
	}

	return err
}

// logMismatch reports a scope/trace count mismatch through oopslog at Error
// level before it is returned to the caller, per the ambient logging
// discipline: the error value is self-sufficient, but a mismatch is also an
// operational event worth a structured log record.
func logMismatch(ctx context.Context, mismatch *MismatchError) {
	ctx = oopslog.WithLocation(ctx, oopslog.Location{
		File:  mismatch.File,
		Line:  mismatch.Line,
		Label: mismatch.Label,
	})

	oopslog.Default.ErrorContext(ctx, "trace scope/point count mismatch",
		"scope_count", mismatch.ScopeCount,
		"trace_count", mismatch.TraceCount,
	)

	if obs := mismatchObserver.Load(); obs != nil {
		(*obs)(mismatch)
	}
}

// mismatchObserver is an optional hook invoked, in addition to logMismatch's
// logging, whenever Point detects a scope/trace count mismatch. It exists so
// a self-observability layer (internal/traceobs) can count mismatches
// without pkg/trace importing it back.
var mismatchObserver atomic.Pointer[func(*MismatchError)]

// SetMismatchObserver registers fn to run on every mismatch Point detects,
// replacing any previously registered observer. Passing nil clears it.
func SetMismatchObserver(fn func(*MismatchError)) {
	if fn == nil {
		mismatchObserver.Store(nil)
		return
	}

	mismatchObserver.Store(&fn)
}
