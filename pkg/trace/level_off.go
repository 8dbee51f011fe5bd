//go:build trace_off

package trace

// CompileLevel is the build-time active level, selected by the trace_off
// build tag. No annotation participates when the module is built this way.
const CompileLevel = OFF
