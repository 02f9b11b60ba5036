package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/cache"
	perrors "github.com/matzehuels/papg/pkg/errors"
	pgio "github.com/matzehuels/papg/pkg/io"
	"github.com/matzehuels/papg/pkg/observability"
	"github.com/matzehuels/papg/pkg/solver"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner, since every solve builds its own [solver.Solver].
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the expiry of stored entries. Zero selects [cache.DefaultTTL].
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedSolution is the stored form of a [Result].
type cachedSolution struct {
	Winners    []arena.Player `json:"winners"`
	Measures   []string       `json:"measures"`
	Stats      solver.Stats   `json:"stats"`
	DurationUS int64          `json:"duration_us"`
}

// Solve runs one strategy on a, returning the cached solution when one
// exists. Options are validated first; unknown names yield coded errors.
func (r *Runner) Solve(ctx context.Context, a *arena.Arena, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hash, err := GameHash(a)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.SolutionKey(hash, opts.SolutionKeyOpts())

	if !opts.Refresh {
		if res, ok := r.cachedResult(ctx, key, a.Size()); ok {
			res.Strategy = opts.strategy
			res.GameHash = hash
			r.Logger.Debug("solution from cache", "strategy", opts.Strategy, "key", key)
			return res, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := solve(ctx, a, opts)
	if err != nil {
		return nil, err
	}
	res.GameHash = hash

	r.storeJSON(ctx, "solution", key, cachedSolution{
		Winners:    res.Winners,
		Measures:   res.Measures,
		Stats:      res.Stats,
		DurationUS: res.Duration.Microseconds(),
	})
	return res, nil
}

// storeJSON encodes v and stores it under key. Failures are logged and
// leave the cache unchanged; the caller's result is unaffected.
func (r *Runner) storeJSON(ctx context.Context, kind, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("cache entry not encoded", "kind", kind, "key", key, "err", err)
		return
	}
	r.store(ctx, kind, key, data)
}

func (r *Runner) store(ctx context.Context, kind, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// SolveAll runs every strategy in [solver.Strategies] order. The context is
// checked between strategies.
func (r *Runner) SolveAll(ctx context.Context, a *arena.Arena, opts Options) ([]*Result, error) {
	var results []*Result
	for _, st := range solver.Strategies() {
		o := opts
		o.Strategy = string(st)
		res, err := r.Solve(ctx, a, o)
		if err != nil {
			return results, fmt.Errorf("%s: %w", st, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// cachedResult loads and checks a stored solution. Entries that fail to
// decode or do not match the game size count as misses.
func (r *Runner) cachedResult(ctx context.Context, key string, size int) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	var cs cachedSolution
	if err := json.Unmarshal(data, &cs); err != nil || len(cs.Winners) != size {
		observability.Cache().OnCacheMiss(ctx, "solution")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "solution")
	return &Result{
		Winners:  cs.Winners,
		Measures: cs.Measures,
		Stats:    cs.Stats,
		Duration: time.Duration(cs.DurationUS) * time.Microsecond,
		CacheHit: true,
	}, true
}

// solve runs the solver without consulting the cache.
func solve(ctx context.Context, a *arena.Arena, opts Options) (*Result, error) {
	hooks := observability.Pipeline()
	hooks.OnSolveStart(ctx, opts.Strategy, a.Size())

	s := solver.New(a,
		solver.WithSeed(opts.Seed),
		solver.WithLockPolicy(opts.policy),
		solver.WithLogger(opts.Logger),
	)
	start := time.Now()
	winners, err := s.Solve(opts.strategy)
	elapsed := time.Since(start)
	stats := s.Stats()
	hooks.OnSolveComplete(ctx, opts.Strategy, stats.Lifts, elapsed, err)
	if err != nil {
		return nil, err
	}

	measures := make([]string, a.Size())
	for v := range measures {
		measures[v] = s.Measure(v).String()
	}
	return &Result{
		Strategy: opts.strategy,
		Winners:  winners,
		Measures: measures,
		Stats:    stats,
		Duration: elapsed,
	}, nil
}

// GameHash returns the content hash of the canonical PGSolver text of a.
func GameHash(a *arena.Arena) (string, error) {
	var buf bytes.Buffer
	if err := pgio.WritePGSolver(a, &buf); err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInternal, err, "serialize game")
	}
	return cache.Hash(buf.Bytes()), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}
