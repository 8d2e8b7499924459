package kdense

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParallel_FourCorners(t *testing.T) {
	ds := fourCorners(t)
	eng, err := New(ds, 2,
		WithPrecision(4),
		WithParallelRestarts(2),
		WithRandSource(rand.NewSource(9)),
	)
	require.NoError(t, err)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.K)
	assert.Equal(t, 4, res.Clusters.TotalMembers())
	for _, p := range ds.Points() {
		require.True(t, p.Assigned())
		assert.True(t, res.Clusters[p.ClusterIndex()].Contains(p))
	}
}

func TestRunParallel_PartitionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	coords := make([][]float64, 40)
	for i := range coords {
		coords[i] = []float64{rng.Float64() * 50, rng.Float64() * 50}
	}
	ds := testDataset(t, coords...)

	eng, err := New(ds, 5,
		WithPrecision(6),
		WithParallelRestarts(3),
		WithRandSource(rand.NewSource(13)),
	)
	require.NoError(t, err)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ds.Len(), res.Clusters.TotalMembers())
	for _, p := range ds.Points() {
		require.True(t, p.Assigned())
		assert.True(t, res.Clusters[p.ClusterIndex()].Contains(p))
	}
}

func TestRunParallel_MoreWorkersThanRestarts(t *testing.T) {
	ds := fourCorners(t)
	eng, err := New(ds, 2,
		WithPrecision(2),
		WithParallelRestarts(8),
		WithRandSource(rand.NewSource(2)),
	)
	require.NoError(t, err)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.Clusters.TotalMembers())
}
