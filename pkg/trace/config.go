package trace

import "sync/atomic"

// config holds the process-wide mutable trace configuration. Values are
// small and read on every Scope/Point call, so they are backed by atomics
// rather than a mutex: "configure before tracing starts" is the expected
// discipline, but concurrent reads during tracing are always safe.
type config struct {
	level     atomic.Uint32
	anonymize atomic.Bool
}

var globalConfig = newConfig()

func newConfig() *config {
	c := &config{}
	c.level.Store(uint32(INFO))

	return c
}

// SetLevel sets the runtime trace level. Annotations whose own level is
// below this are inert until it is raised again.
func SetLevel(level Level) {
	globalConfig.level.Store(uint32(level))
}

// GetLevel returns the current runtime trace level.
func GetLevel() Level {
	return Level(globalConfig.level.Load())
}

// SetAnonymous toggles location anonymization. When true, Location lookups
// blank Label/File/Line but keep AnonymousID.
func SetAnonymous(anonymous bool) {
	globalConfig.anonymize.Store(anonymous)
}

// GetAnonymous reports whether location anonymization is active.
func GetAnonymous() bool {
	return globalConfig.anonymize.Load()
}

// active reports whether an annotation declared at lvl should run, taking
// both the build-time CompileLevel and the runtime Config level into
// account.
func active(lvl Level) bool {
	return lvl >= CompileLevel && lvl >= GetLevel()
}
