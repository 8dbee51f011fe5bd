//go:build !trace_verbose && !trace_debug && !trace_off

package trace

// CompileLevel is the build-time active level. The default build carries
// annotations at INFO and above; build with -tags trace_verbose,
// -tags trace_debug, or -tags trace_off to change it.
const CompileLevel = INFO
