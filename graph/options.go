package graph

import (
	"time"

	"github.com/hydro-project/hydro-sub005/dlog"
)

// runtimeOptions holds configuration resolved from GraphOption values at
// Build time.
type runtimeOptions struct {
	logger         dlog.Logger
	metricsEnabled bool
	tickBudget     int
	clock          func() time.Time
}

// GraphOption configures a Dfir instance at Build time.
type GraphOption interface {
	applyGraph(*runtimeOptions) error
}

// graphOptionFunc implements GraphOption.
type graphOptionFunc struct {
	apply func(*runtimeOptions) error
}

func (g *graphOptionFunc) applyGraph(opts *runtimeOptions) error {
	return g.apply(opts)
}

// WithLogger routes the scheduler's tick_start and tick_end events (at
// debug level) through logger. Stratum boundaries, build diagnostics and
// subgraph errors are not logged. The default is dlog.NoOpLogger{}, so a
// caller pays nothing unless it opts in.
func WithLogger(logger dlog.Logger) GraphOption {
	return &graphOptionFunc{func(opts *runtimeOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithMetrics records whether metrics were requested. The per-subgraph
// and per-handoff counters read by Dfir.Metrics() are collected whether
// or not this option is set.
func WithMetrics(enabled bool) GraphOption {
	return &graphOptionFunc{func(opts *runtimeOptions) error {
		opts.metricsEnabled = enabled
		return nil
	}}
}

// WithTickBudget bounds how many external events Run drains into the
// ready queue per tick boundary; zero (the default) means unbounded.
// Mirrors the reference implementation's overload-guard on its external
// event channel.
func WithTickBudget(n int) GraphOption {
	return &graphOptionFunc{func(opts *runtimeOptions) error {
		opts.tickBudget = n
		return nil
	}}
}

// WithClock overrides the clock used to timestamp log entries and
// duration metrics — a test seam so scenario tests don't depend on wall
// time.
func WithClock(clock func() time.Time) GraphOption {
	return &graphOptionFunc{func(opts *runtimeOptions) error {
		opts.clock = clock
		return nil
	}}
}

func resolveGraphOptions(opts []GraphOption) (*runtimeOptions, error) {
	cfg := &runtimeOptions{
		logger: dlog.NoOpLogger{},
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyGraph(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
