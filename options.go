package kdense

import (
	"math/rand"
)

type options struct {
	precision int
	maxPasses int
	parallel  int
	source    rand.Source
	logger    *Logger
	metrics   MetricsCollector
}

// Option configures the engine constructor.
type Option func(*options)

// WithPrecision sets the number of independent random restarts performed
// before the density-guided reseeding pass. Default 1.
func WithPrecision(p int) Option {
	return func(o *options) {
		o.precision = p
	}
}

// WithMaxPasses caps the number of passes a single turn may execute. The
// convergence guarantee makes the cap unnecessary for finite input; it
// exists as a safety valve. Zero (the default) means no cap.
func WithMaxPasses(n int) Option {
	return func(o *options) {
		o.maxPasses = n
	}
}

// WithParallelRestarts runs restarts on up to n workers, each on its own
// copy of the point arena. Per-worker density counters are reduced after
// all workers finish, and the assignment state of the worker that ran the
// last restart feeds the reseeding pass. n <= 1 keeps restarts sequential.
func WithParallelRestarts(n int) Option {
	return func(o *options) {
		o.parallel = n
	}
}

// WithRandSource sets the source used to draw random initial centers.
// Fix the seed for reproducible runs.
func WithRandSource(src rand.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithMetricsCollector sets a collector notified after every restart and
// after the final reseeded turn. Pass nil to disable collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger sets the engine logger. Defaults to a noop logger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}
