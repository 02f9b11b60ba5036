// Package pipeline runs the load → solve → render pipeline shared by the CLI
// and the HTTP API.
//
// Centralizing these stages keeps caching, error codes and instrumentation
// identical across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a PGSolver or JSON game file into an arena
//  2. Solve: Run one strategy, consulting the cache first
//  3. Render: Produce a DOT, SVG, PNG or PDF diagram coloured by winner
//
// Each stage can be run independently.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	a, err := runner.Load(ctx, "game.gm")
//	if err != nil {
//	    return err
//	}
//	res, err := runner.Solve(ctx, a, pipeline.Options{Strategy: "recursive"})
//	if err != nil {
//	    return err
//	}
//	svg, err := runner.Render(ctx, a, res, pipeline.RenderOptions{Format: render.FormatSVG})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/cache"
	perrors "github.com/matzehuels/papg/pkg/errors"
	"github.com/matzehuels/papg/pkg/render"
	"github.com/matzehuels/papg/pkg/solver"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a solve. This struct supports JSON serialization for
// API requests.
type Options struct {
	Strategy   string `json:"strategy,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	LockPolicy string `json:"lock_policy,omitempty"`

	// Refresh ignores cached solutions but still stores the new one.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	strategy solver.Strategy
	policy   solver.LockPolicy
}

// ValidateAndSetDefaults resolves the strategy and lock policy names,
// applying [solver.DefaultStrategy] and the safe policy when they are empty.
// Unknown names return coded errors.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Strategy == "" {
		o.Strategy = string(solver.DefaultStrategy)
	}
	st, err := solver.ParseStrategy(o.Strategy)
	if err != nil {
		return err
	}
	policy, err := solver.ParseLockPolicy(o.LockPolicy)
	if err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.strategy, o.policy = st, policy
	o.Strategy, o.LockPolicy = string(st), policy.String()
	return nil
}

// SolutionKeyOpts returns cache key options for a solve.
func (o *Options) SolutionKeyOpts() cache.SolutionKeyOpts {
	opts := cache.SolutionKeyOpts{Strategy: o.Strategy, LockPolicy: o.LockPolicy}
	if o.strategy.IsRandomized() {
		opts.Seed = o.Seed
		if opts.Seed == 0 {
			opts.Seed = solver.DefaultSeed
		}
	}
	return opts
}

// RenderOptions configures a diagram.
type RenderOptions struct {
	Format   render.Format `json:"format"`
	Detailed bool          `json:"detailed,omitempty"`

	// Measures adds the final progress measure to every vertex label.
	Measures bool `json:"measures,omitempty"`
}

// Validate applies the SVG default and rejects unknown formats.
func (o *RenderOptions) Validate() error {
	if o.Format == "" {
		o.Format = render.FormatSVG
	}
	f, err := render.ParseFormat(string(o.Format))
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidFormat, err, "render")
	}
	o.Format = f
	return nil
}

// KeyOpts returns cache key options for a diagram.
func (o *RenderOptions) KeyOpts() cache.RenderKeyOpts {
	return cache.RenderKeyOpts{Format: string(o.Format), Detailed: o.Detailed, Measures: o.Measures}
}

// =============================================================================
// Result
// =============================================================================

// Result is the outcome of one solve.
type Result struct {
	Strategy solver.Strategy `json:"strategy"`

	// Winners holds the winner of every vertex in id order.
	Winners []arena.Player `json:"winners"`

	// Measures holds the final progress measure of every vertex, formatted
	// with [measure.Measure.String].
	Measures []string `json:"measures"`

	Stats    solver.Stats  `json:"stats"`
	Duration time.Duration `json:"duration"`

	// GameHash is the content hash of the canonical game text.
	GameHash string `json:"game_hash"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"-"`
}

// WonBy returns the ids of the vertices won by p.
func (r *Result) WonBy(p arena.Player) []int {
	var ids []int
	for id, w := range r.Winners {
		if w == p {
			ids = append(ids, id)
		}
	}
	return ids
}
