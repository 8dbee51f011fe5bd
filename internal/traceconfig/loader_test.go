package traceconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/resserops/oopstrace/pkg/trace"
)

// fixtureConfig mirrors Config's shape with plain yaml tags: Config itself
// carries mapstructure tags for viper, not yaml tags, so fixtures are
// marshaled from this local type to get the "level"/"anonymize" keys viper
// expects to read back.
type fixtureConfig struct {
	Level     string `yaml:"level"`
	Anonymize bool   `yaml:"anonymize"`
}

func writeFixture(t *testing.T, cfg Config) string {
	t.Helper()

	b, err := yaml.Marshal(fixtureConfig{Level: cfg.Level, Anonymize: cfg.Anonymize})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".oopstrace.yaml")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	return path
}

func TestLoadDefaultsWhenNoFileOrEnv(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Level)
	assert.False(t, cfg.Anonymize)
}

func TestLoadReadsFixtureFile(t *testing.T) {
	path := writeFixture(t, Config{Level: "debug", Anonymize: true})

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.Anonymize)
}

func TestLoadRejectsInvalidLevelInFixture(t *testing.T) {
	path := writeFixture(t, Config{Level: "noisy"})

	_, err := Load(path)

	require.Error(t, err)
}

func TestLoadHonorsEnvironmentOverride(t *testing.T) {
	path := writeFixture(t, Config{Level: "info"})

	t.Setenv("OOPSTRACE_LEVEL", "verbose")
	t.Setenv("OOPSTRACE_ANONYMIZE", "true")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.Level)
	assert.True(t, cfg.Anonymize)
}

func TestApplySetsPackageLevelTraceConfig(t *testing.T) {
	origLevel := trace.GetLevel()
	origAnon := trace.GetAnonymous()

	defer trace.SetLevel(origLevel)
	defer trace.SetAnonymous(origAnon)

	Apply(&Config{Level: "verbose", Anonymize: true})

	assert.Equal(t, trace.VERBOSE, trace.GetLevel())
	assert.True(t, trace.GetAnonymous())
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, trace.INFO, parseLevel("unrecognized"))
	assert.Equal(t, trace.OFF, parseLevel("off"))
	assert.Equal(t, trace.DEBUG, parseLevel("debug"))
	assert.Equal(t, trace.VERBOSE, parseLevel("verbose"))
}
