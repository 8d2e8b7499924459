package kdense

import (
	"context"

	"github.com/clusterlab/kdense/distance"
	"github.com/clusterlab/kdense/model"
)

// turn runs the assignment-update loop until a full pass produces zero
// reassignments and returns the number of passes executed (always >= 1).
//
// A point moves only to a strictly closer cluster; on ties it keeps its
// current assignment. After each pass every non-empty cluster's center is
// recomputed as the coordinate-wise mean of its members; empty clusters
// keep their previous center.
func (e *Engine) turn(ctx context.Context) (int, error) {
	points := e.ds.Points()
	passes := 0
	for {
		if err := ctx.Err(); err != nil {
			return passes, err
		}

		converged := true
		for _, p := range points {
			cur := p.ClusterIndex()
			curDist, err := distance.Euclidean(p.Coord(), e.clusters[cur].Center().Coord())
			if err != nil {
				return passes, err
			}

			closest := cur
			for j, c := range e.clusters {
				d, err := distance.Euclidean(p.Coord(), c.Center().Coord())
				if err != nil {
					return passes, err
				}
				if d < curDist {
					closest = j
					curDist = d
				}
			}

			if closest != cur {
				e.clusters.Assign(p, closest)
				converged = false
			}
		}

		if err := e.updateCenters(); err != nil {
			return passes, err
		}
		passes++

		if converged {
			return passes, nil
		}
		if e.maxPasses > 0 && passes >= e.maxPasses {
			e.logger.Warn("pass budget exhausted before convergence", "passes", passes)
			return passes, nil
		}
	}
}

// assignNearest performs the initial full assignment of every point to its
// nearest center. It seeds the turn loop and does not count as a pass.
func (e *Engine) assignNearest() error {
	for _, p := range e.ds.Points() {
		closest := 0
		best, err := distance.Euclidean(p.Coord(), e.clusters[0].Center().Coord())
		if err != nil {
			return err
		}
		for j := 1; j < len(e.clusters); j++ {
			d, err := distance.Euclidean(p.Coord(), e.clusters[j].Center().Coord())
			if err != nil {
				return err
			}
			if d < best {
				closest = j
				best = d
			}
		}
		e.clusters.Assign(p, closest)
	}
	return nil
}

// updateCenters recomputes every non-empty cluster's center as the
// coordinate-wise arithmetic mean of its members.
func (e *Engine) updateCenters() error {
	points := e.ds.Points()
	dim := e.ds.Dim()
	for _, c := range e.clusters {
		n := c.Size()
		if n == 0 {
			continue
		}
		sums := make([]float64, dim)
		c.Each(func(ord model.Ordinal) {
			coord := points[ord].Coord()
			for d := range sums {
				sums[d] += coord[d]
			}
		})
		for d := range sums {
			sums[d] /= float64(n)
		}
		if err := c.Center().Set(sums...); err != nil {
			return err
		}
	}
	return nil
}
