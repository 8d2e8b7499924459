package kdense

import (
	"context"
	"math/rand"
	"time"

	"github.com/clusterlab/kdense/distance"
	"github.com/clusterlab/kdense/model"
)

// Result is the outcome of one full clustering run.
type Result struct {
	// K is the requested cluster count.
	K int
	// MeanPasses is the arithmetic mean pass count over the random restarts.
	MeanPasses float64
	// FinalPasses is the pass count of the reseeded final turn.
	FinalPasses int
	// Clusters is the converged cluster set of the final turn.
	Clusters model.Clusters
}

// Engine runs the random-restart driver over one dataset. It is not safe
// for concurrent use; a run mutates the shared point arena.
type Engine struct {
	ds        *model.Dataset
	k         int
	precision int
	maxPasses int
	parallel  int

	// density accumulates, per point ordinal, the sizes of the clusters the
	// point ended up in across restarts. Consumed by reseeding.
	density []uint64

	rng      *rand.Rand
	logger   *Logger
	metrics  MetricsCollector
	clusters model.Clusters
}

// New validates the inputs and builds an engine. All input validation
// happens here, before any computation starts.
func New(ds *model.Dataset, k int, opts ...Option) (*Engine, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if k < 1 || k > ds.Len() {
		return nil, &ErrInvalidClusterCount{K: k, Size: ds.Len()}
	}

	dim := ds.Dim()
	for _, p := range ds.Points() {
		if len(p.Coord()) != dim {
			return nil, &distance.ErrDimensionMismatch{Expected: dim, Actual: len(p.Coord())}
		}
	}

	o := &options{
		precision: 1,
		source:    rand.NewSource(time.Now().UnixNano()),
		logger:    NoopLogger(),
		metrics:   NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(o)
	}
	if o.precision < 1 {
		return nil, ErrInvalidPrecision
	}

	return &Engine{
		ds:        ds,
		k:         k,
		precision: o.precision,
		maxPasses: o.maxPasses,
		parallel:  o.parallel,
		density:   make([]uint64, ds.Len()),
		rng:       rand.New(o.source),
		logger:    o.logger.WithK(k).WithPrecision(o.precision),
		metrics:   o.metrics,
	}, nil
}

// Run performs all restarts followed by the density-guided reseeding turn
// and returns the converged clusters. Cancellation is checked between
// passes of the turn loop.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	var total int
	if e.parallel > 1 && e.precision > 1 {
		t, err := e.runParallel(ctx)
		if err != nil {
			return nil, err
		}
		total = t
	} else {
		for r := 0; r < e.precision; r++ {
			began := time.Now()
			passes, err := e.restart(ctx)
			if err != nil {
				return nil, err
			}
			e.accumulateDensity()
			total += passes
			e.metrics.RecordRestart(passes, time.Since(began))
			e.logger.Debug("restart converged", "restart", r, "passes", passes)
		}
	}

	began := time.Now()
	final, err := e.reseed(ctx)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordReseed(final, time.Since(began))

	res := &Result{
		K:           e.k,
		MeanPasses:  float64(total) / float64(e.precision),
		FinalPasses: final,
		Clusters:    e.clusters,
	}
	e.logger.Info("clustering finished",
		"mean_passes", res.MeanPasses,
		"final_passes", res.FinalPasses,
		"duration", time.Since(start),
	)
	return res, nil
}

// restart runs one full initialization-plus-turn cycle from fresh random
// centers and returns the turn's pass count.
func (e *Engine) restart(ctx context.Context) (int, error) {
	e.clearClusters()
	if err := e.initRandomClusters(); err != nil {
		return 0, err
	}
	if err := e.assignNearest(); err != nil {
		return 0, err
	}
	if err := e.updateCenters(); err != nil {
		return 0, err
	}
	return e.turn(ctx)
}

// clearClusters detaches every point and drops the active cluster set.
func (e *Engine) clearClusters() {
	e.clusters.Clear(e.ds.Points())
	e.clusters = nil
}

// initRandomClusters builds k clusters whose centers are copied from k
// uniformly random dataset points. Sampling is with replacement: duplicate
// center positions are permitted.
func (e *Engine) initRandomClusters() error {
	points := e.ds.Points()
	cs := make(model.Clusters, 0, e.k)
	for i := 0; i < e.k; i++ {
		seed := points[e.rng.Intn(len(points))]
		center, err := model.NewCenter(seed.Coord()...)
		if err != nil {
			return err
		}
		cs = append(cs, model.NewCluster(center))
	}
	e.clusters = cs
	return nil
}

// accumulateDensity adds each point's final cluster size to its density
// counter, rewarding points that end up in large, stable clusters.
func (e *Engine) accumulateDensity() {
	for _, p := range e.ds.Points() {
		e.density[p.Ordinal()] += uint64(e.clusters[p.ClusterIndex()].Size())
	}
}
