package kdense

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clusterlab/kdense/model"
)

// runParallel distributes the restarts over up to e.parallel workers, each
// on its own clone of the point arena. Density accumulation is restructured
// as a reduction: workers fill private counters that are summed into the
// engine's counter after all of them finish. The worker owning the highest
// restart index contributes the assignment state the reseeding pass reads.
func (e *Engine) runParallel(ctx context.Context) (int, error) {
	workers := e.parallel
	if workers > e.precision {
		workers = e.precision
	}
	per := e.precision / workers
	extra := e.precision % workers

	// Seeds are drawn up-front from the engine source, so a fixed seed
	// yields the same per-worker schedule regardless of goroutine timing.
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = e.rng.Int63()
	}

	type workerResult struct {
		density []uint64
		passes  int
		sub     *Engine
	}
	results := make([]*workerResult, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		count := per
		if w < extra {
			count++
		}
		g.Go(func() error {
			sub := &Engine{
				ds:        e.ds.Clone(),
				k:         e.k,
				precision: count,
				maxPasses: e.maxPasses,
				density:   make([]uint64, e.ds.Len()),
				rng:       rand.New(rand.NewSource(seeds[w])),
				logger:    e.logger,
				metrics:   e.metrics,
			}
			var total int
			for r := 0; r < count; r++ {
				began := time.Now()
				passes, err := sub.restart(ctx)
				if err != nil {
					return err
				}
				sub.accumulateDensity()
				total += passes
				e.metrics.RecordRestart(passes, time.Since(began))
			}
			results[w] = &workerResult{density: sub.density, passes: total, sub: sub}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total int
	for _, r := range results {
		total += r.passes
		for i, d := range r.density {
			e.density[i] += d
		}
	}

	if err := e.adopt(results[workers-1].sub); err != nil {
		return 0, err
	}
	return total, nil
}

// adopt copies a worker's final clusters and point assignments onto the
// engine's own arena.
func (e *Engine) adopt(sub *Engine) error {
	cs := make(model.Clusters, 0, len(sub.clusters))
	for _, c := range sub.clusters {
		center, err := model.NewCenter(c.Center().Coord()...)
		if err != nil {
			return err
		}
		cs = append(cs, model.NewCluster(center))
	}
	e.clusters = cs

	subPoints := sub.ds.Points()
	for i, p := range e.ds.Points() {
		if sp := subPoints[i]; sp.Assigned() {
			cs.Assign(p, sp.ClusterIndex())
		}
	}
	return nil
}
