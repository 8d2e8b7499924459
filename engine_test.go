package kdense

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clusterlab/kdense/distance"
	"github.com/clusterlab/kdense/model"
)

func testDataset(t *testing.T, coords ...[]float64) *model.Dataset {
	t.Helper()
	points := make([]*model.Point, len(coords))
	for i, c := range coords {
		p, err := model.NewPoint(model.Ordinal(i), fmt.Sprintf("p%d", i), c...)
		require.NoError(t, err)
		points[i] = p
	}
	ds, err := model.NewDataset(points, "x", "y")
	require.NoError(t, err)
	return ds
}

func fourCorners(t *testing.T) *model.Dataset {
	return testDataset(t, []float64{0, 0}, []float64{0, 1}, []float64{10, 0}, []float64{10, 1})
}

func TestNew_Validation(t *testing.T) {
	ds := fourCorners(t)

	t.Run("EmptyDataset", func(t *testing.T) {
		empty, err := model.NewDataset(nil)
		require.NoError(t, err)
		_, err = New(empty, 1)
		assert.ErrorIs(t, err, ErrEmptyDataset)

		_, err = New(nil, 1)
		assert.ErrorIs(t, err, ErrEmptyDataset)
	})

	t.Run("KTooSmall", func(t *testing.T) {
		_, err := New(ds, 0)
		var icc *ErrInvalidClusterCount
		require.ErrorAs(t, err, &icc)
		assert.Equal(t, 0, icc.K)
		assert.Equal(t, 4, icc.Size)
	})

	t.Run("KTooLarge", func(t *testing.T) {
		_, err := New(ds, 5)
		var icc *ErrInvalidClusterCount
		assert.ErrorAs(t, err, &icc)
	})

	t.Run("InvalidPrecision", func(t *testing.T) {
		_, err := New(ds, 2, WithPrecision(0))
		assert.ErrorIs(t, err, ErrInvalidPrecision)
	})

	t.Run("MixedDimensions", func(t *testing.T) {
		p0, err := model.NewPoint(0, "a", 0, 0)
		require.NoError(t, err)
		p1, err := model.NewPoint(1, "b", 0, 0, 0)
		require.NoError(t, err)
		mixed, err := model.NewDataset([]*model.Point{p0, p1})
		require.NoError(t, err)

		_, err = New(mixed, 1)
		var dm *distance.ErrDimensionMismatch
		assert.ErrorAs(t, err, &dm)
	})
}

func TestTurn_WellSeparatedClusters(t *testing.T) {
	// Two well-separated pairs settle into the same partition whether the
	// seeds span the pairs or collapse onto a single point.
	for _, seeds := range [][]model.Ordinal{
		{0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 0}, {0, 0}, {3, 3},
	} {
		ds := fourCorners(t)
		eng, err := New(ds, 2)
		require.NoError(t, err)

		seedClusters(t, eng, seeds...)
		passes, err := eng.turn(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, passes, 1)

		points := ds.Points()
		left := points[0].ClusterIndex()
		right := points[2].ClusterIndex()
		assert.NotEqual(t, left, right, "seeds %v", seeds)
		assert.Equal(t, left, points[1].ClusterIndex(), "seeds %v", seeds)
		assert.Equal(t, right, points[3].ClusterIndex(), "seeds %v", seeds)

		leftCenter := eng.clusters[left].Center().Coord()
		rightCenter := eng.clusters[right].Center().Coord()
		assert.InDelta(t, 0.0, leftCenter[0], 1e-9)
		assert.InDelta(t, 0.5, leftCenter[1], 1e-9)
		assert.InDelta(t, 10.0, rightCenter[0], 1e-9)
		assert.InDelta(t, 0.5, rightCenter[1], 1e-9)
	}
}

func TestRun_FourCorners(t *testing.T) {
	ds := fourCorners(t)
	eng, err := New(ds, 2, WithPrecision(3), WithRandSource(rand.NewSource(1)))
	require.NoError(t, err)

	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.K)
	assert.GreaterOrEqual(t, res.MeanPasses, 1.0)
	assert.GreaterOrEqual(t, res.FinalPasses, 1)
	assert.Equal(t, 4, res.Clusters.TotalMembers())

	// Converged centers are the exact means of their members.
	points := ds.Points()
	for _, c := range res.Clusters {
		if c.Size() == 0 {
			continue
		}
		var sx, sy float64
		c.Each(func(ord model.Ordinal) {
			sx += points[ord].Coord()[0]
			sy += points[ord].Coord()[1]
		})
		n := float64(c.Size())
		assert.InDelta(t, sx/n, c.Center().Coord()[0], 1e-12)
		assert.InDelta(t, sy/n, c.Center().Coord()[1], 1e-12)
	}
}

func TestRun_PartitionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	coords := make([][]float64, 50)
	for i := range coords {
		coords[i] = []float64{rng.Float64() * 100, rng.Float64() * 100}
	}
	ds := testDataset(t, coords...)

	for _, k := range []int{1, 3, 7} {
		eng, err := New(ds, k, WithPrecision(3), WithRandSource(rand.NewSource(11)))
		require.NoError(t, err)
		res, err := eng.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, ds.Len(), res.Clusters.TotalMembers(), "k=%d", k)
		for _, p := range ds.Points() {
			require.True(t, p.Assigned())
			assert.True(t, res.Clusters[p.ClusterIndex()].Contains(p))
			for j, c := range res.Clusters {
				if j != p.ClusterIndex() {
					assert.False(t, c.Contains(p))
				}
			}
		}
	}
}

func TestRun_AllPointsIdentical(t *testing.T) {
	coords := make([][]float64, 6)
	for i := range coords {
		coords[i] = []float64{4, 2}
	}

	t.Run("KIsOne", func(t *testing.T) {
		ds := testDataset(t, coords...)
		eng, err := New(ds, 1, WithRandSource(rand.NewSource(3)))
		require.NoError(t, err)
		res, err := eng.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1.0, res.MeanPasses)
		assert.Equal(t, 1, res.FinalPasses)
		assert.Equal(t, 6, res.Clusters[0].Size())
	})

	t.Run("KAboveOne", func(t *testing.T) {
		// Duplicate random seeds pick the same coordinates; one cluster
		// collects everything, the rest stay empty.
		ds := testDataset(t, coords...)
		eng, err := New(ds, 3, WithRandSource(rand.NewSource(3)))
		require.NoError(t, err)
		res, err := eng.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, res.FinalPasses)
		assert.Equal(t, 6, res.Clusters.TotalMembers())
		var nonEmpty int
		for _, c := range res.Clusters {
			if c.Size() > 0 {
				nonEmpty++
				assert.Equal(t, 6, c.Size())
			}
		}
		assert.Equal(t, 1, nonEmpty)
	})
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ds := fourCorners(t)
	eng, err := New(ds, 2)
	require.NoError(t, err)
	_, err = eng.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_MetricsCollector(t *testing.T) {
	ds := fourCorners(t)
	mc := &BasicMetricsCollector{}
	eng, err := New(ds, 2,
		WithPrecision(3),
		WithMetricsCollector(mc),
		WithRandSource(rand.NewSource(1)),
	)
	require.NoError(t, err)
	_, err = eng.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), mc.RestartCount.Load())
	assert.Equal(t, int64(1), mc.ReseedCount.Load())
	assert.GreaterOrEqual(t, mc.RestartPasses.Load(), int64(3))
	assert.GreaterOrEqual(t, mc.ReseedPasses.Load(), int64(1))
}

func TestRun_MeanPassesAveragesRestarts(t *testing.T) {
	ds := fourCorners(t)
	eng, err := New(ds, 2, WithPrecision(4), WithRandSource(rand.NewSource(5)))
	require.NoError(t, err)
	res, err := eng.Run(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.MeanPasses, 1.0)
}
