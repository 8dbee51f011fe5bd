//go:build trace_verbose

package trace

// CompileLevel is the build-time active level, selected by the
// trace_verbose build tag.
const CompileLevel = VERBOSE
