//go:build trace_debug

package trace

// CompileLevel is the build-time active level, selected by the
// trace_debug build tag.
const CompileLevel = DEBUG
