package kdense

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReseed_PicksHighestDensityPoints(t *testing.T) {
	ds := fourCorners(t)
	eng, err := New(ds, 2)
	require.NoError(t, err)

	// Converge once so every point has a current cluster for the zeroing
	// step to read.
	seedClusters(t, eng, 0, 2)
	_, err = eng.turn(context.Background())
	require.NoError(t, err)

	eng.density = []uint64{5, 1, 4, 1}
	passes, err := eng.reseed(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, passes, 1)

	// Point 0's whole cluster was zeroed after the first pick, so the
	// second center came from point 2, not point 1.
	points := ds.Points()
	left := points[0].ClusterIndex()
	right := points[2].ClusterIndex()
	assert.NotEqual(t, left, right)
	assert.Equal(t, left, points[1].ClusterIndex())
	assert.Equal(t, right, points[3].ClusterIndex())

	leftCenter := eng.clusters[left].Center().Coord()
	rightCenter := eng.clusters[right].Center().Coord()
	assert.InDelta(t, 0.5, leftCenter[1], 1e-9)
	assert.InDelta(t, 10.0, rightCenter[0], 1e-9)
}

func TestReseed_TieBreaksOnLowestOrdinal(t *testing.T) {
	ds := fourCorners(t)
	eng, err := New(ds, 2)
	require.NoError(t, err)

	seedClusters(t, eng, 0, 2)
	_, err = eng.turn(context.Background())
	require.NoError(t, err)

	// All densities equal: the first pick must be point 0, which zeroes
	// the left pair and forces the second pick to point 2.
	eng.density = []uint64{3, 3, 3, 3}
	_, err = eng.reseed(context.Background())
	require.NoError(t, err)

	c0 := eng.clusters[0].Center().Coord()
	c1 := eng.clusters[1].Center().Coord()
	assert.InDelta(t, 0.0, c0[0], 1e-9)
	assert.InDelta(t, 10.0, c1[0], 1e-9)
}

func TestReseed_ResetsConsumedDensity(t *testing.T) {
	ds := fourCorners(t)
	eng, err := New(ds, 2)
	require.NoError(t, err)

	seedClusters(t, eng, 0, 2)
	_, err = eng.turn(context.Background())
	require.NoError(t, err)

	eng.density = []uint64{5, 1, 4, 1}
	_, err = eng.reseed(context.Background())
	require.NoError(t, err)
	for ord, d := range eng.density {
		assert.Zero(t, d, "density for point %d", ord)
	}
}
