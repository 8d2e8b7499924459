package kdense

import (
	"context"

	"github.com/clusterlab/kdense/model"
)

// reseed replaces random initialization with centers copied from the k
// points holding the highest accumulated density, then runs one final turn.
//
// Ties on the maximum density break toward the lowest point ordinal
// (first-seen input order). After each pick, the density of every point in
// the picked point's current cluster is zeroed so one dense region cannot
// supply two centers.
func (e *Engine) reseed(ctx context.Context) (int, error) {
	points := e.ds.Points()

	centers := make([]*model.Center, 0, e.k)
	for i := 0; i < e.k; i++ {
		best := 0
		for ord := 1; ord < len(e.density); ord++ {
			if e.density[ord] > e.density[best] {
				best = ord
			}
		}
		pick := points[best]

		if pick.Assigned() {
			e.clusters[pick.ClusterIndex()].Each(func(ord model.Ordinal) {
				e.density[ord] = 0
			})
		} else {
			e.density[best] = 0
		}

		center, err := model.NewCenter(pick.Coord()...)
		if err != nil {
			return 0, err
		}
		centers = append(centers, center)
	}

	e.clearClusters()
	cs := make(model.Clusters, 0, e.k)
	for _, c := range centers {
		cs = append(cs, model.NewCluster(c))
	}
	e.clusters = cs

	if err := e.assignNearest(); err != nil {
		return 0, err
	}
	if err := e.updateCenters(); err != nil {
		return 0, err
	}
	return e.turn(ctx)
}
