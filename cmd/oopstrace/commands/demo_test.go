package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resserops/oopstrace/pkg/trace"
)

func TestNewDemoCommandMetadata(t *testing.T) {
	t.Parallel()

	cmd := NewDemoCommand()
	assert.Equal(t, "demo", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestNewDemoCommandRunEProducesNoError(t *testing.T) {
	err := NewDemoCommand().RunE(NewDemoCommand(), nil)
	assert.NoError(t, err)
}

func TestRunDemoBuildsReportableTree(t *testing.T) {
	ctx := trace.Root(context.Background())
	assert.NoError(t, runDemo(ctx))

	rt, ok := trace.Table(ctx)
	assert.True(t, ok)
	assert.NotEmpty(t, rt.Records)
}

func TestDemoFuncBNestsAScope(t *testing.T) {
	ctx := trace.Root(context.Background())
	ctx, end := trace.Scope(ctx, trace.INFO)
	assert.NoError(t, demoFuncB(ctx))
	end()

	top, ok := trace.Table(ctx)
	assert.True(t, ok)
	assert.NotEmpty(t, top.Records)
}
