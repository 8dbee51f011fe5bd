package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelTableCoversEveryRegisteredStore(t *testing.T) {
	before := globalAggregator.count()

	ctx1 := Root(context.Background())
	ctx2 := Root(context.Background())

	ctx1, end1 := Scope(ctx1, INFO)
	defer end1()

	ctx2, end2 := Scope(ctx2, INFO)
	defer end2()

	require.NoError(t, Point(ctx1, "lineage-1-step"))
	require.NoError(t, Point(ctx2, "lineage-2-step"))

	prt := ParallelTable()
	assert.GreaterOrEqual(t, len(prt.Tables), before+2)
}

func TestClearAllResetsEveryStoreAndRegistry(t *testing.T) {
	ctx := Root(context.Background())
	ctx, end := Scope(ctx, INFO)
	require.NoError(t, Point(ctx, "clear-all-step"))
	end()

	rt, ok := Table(ctx)
	require.True(t, ok)
	require.NotEmpty(t, rt.Records)

	ClearAll()

	rt, ok = Table(ctx)
	require.True(t, ok, "ClearAll resets stores in place, the context still carries one")
	assert.Empty(t, rt.Records)

	assert.Zero(t, LocationCount(), "ClearAll also resets the location registry")
}

func TestStoreCountAndLocationCountNeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, StoreCount(), 0)
	assert.GreaterOrEqual(t, LocationCount(), 0)
}
