// Package trace implements a hierarchical, in-process tracing and profiling
// engine. It records wall-clock time, call counts, and optional
// memory-footprint samples consumed by user-annotated scopes and trace
// points, organizes them into a per-goroutine call tree that mirrors the
// dynamic nesting of annotations in the source, aggregates repeated visits
// to the same tree node, and renders the result as a formatted table.
//
// A scope is opened with Scope and closed with the returned func, typically
// via defer:
//
//	ctx, end := trace.Scope(ctx, trace.INFO)
//	defer end()
//
// A trace point closes the current node's interval and advances to the next
// sibling under the same parent:
//
//	trace.Point(ctx, "step1")
//
// The engine is deterministic instrumentation, not sampling-based profiling:
// every annotation executed is accounted for. It does not persist traces,
// export flame graphs, or stream trace data across processes.
package trace
