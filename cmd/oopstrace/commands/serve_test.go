package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServeCommandDefaultAddr(t *testing.T) {
	t.Parallel()

	cmd := NewServeCommand()

	flag := cmd.Flags().Lookup("addr")
	require.NotNil(t, flag)
	assert.Equal(t, "localhost:9090", flag.DefValue)
}

func TestNewServeCommandMetadata(t *testing.T) {
	t.Parallel()

	cmd := NewServeCommand()
	assert.Equal(t, "serve", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}
