// Package bench runs every solving strategy over a set of games and collects
// lift counts, timings and outcomes for comparison.
//
// A [Report] holds one [Row] per game. Each row checks that all strategies
// agreed on the winning partition; a disagreement indicates a solver bug.
// Randomized strategies can be repeated with consecutive seeds, in which case
// the mean and standard deviation of lifts and time are reported using
// gonum's stat package.
package bench

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/papg/pkg/arena"
	"github.com/matzehuels/papg/pkg/solver"
)

// Game is a named arena to benchmark.
type Game struct {
	Name  string
	Arena *arena.Arena
}

// Options configures a benchmark run.
type Options struct {
	// Strategies to run, in column order. Empty selects [solver.Strategies].
	Strategies []solver.Strategy

	// Repeat is the number of runs for randomized strategies. Values below
	// one mean one run.
	Repeat int

	// Seed is the seed of the first randomized run; run i uses Seed+i.
	Seed int64

	LockPolicy solver.LockPolicy
	Logger     *log.Logger
}

// Report is the result of [Run].
type Report struct {
	Strategies []solver.Strategy `json:"strategies"`
	Rows       []Row             `json:"rows"`
}

// Row holds the measurements for one game.
type Row struct {
	Game     string `json:"game"`
	Vertices int    `json:"vertices"`
	Edges    int    `json:"edges"`

	// Results has one entry per strategy, in [Report.Strategies] order.
	Results []Result `json:"results"`

	// Agree reports whether every strategy and run produced the same winners.
	Agree bool `json:"agree"`
}

// Result holds the measurements of one strategy on one game.
type Result struct {
	Strategy solver.Strategy `json:"strategy"`

	// Lifts and Duration are taken from the first run.
	Lifts    int           `json:"lifts"`
	Duration time.Duration `json:"duration"`

	// Stats are the solver counters of the first run.
	Stats solver.Stats `json:"stats"`

	// Winners are the winners of the first run.
	Winners []arena.Player `json:"winners"`

	Runs      int     `json:"runs"`
	LiftsMean float64 `json:"lifts_mean"`
	LiftsStd  float64 `json:"lifts_std"`
	TimeMean  float64 `json:"time_mean_us"`
	TimeStd   float64 `json:"time_std_us"`
}

// OddWinsFirst reports whether vertex 0 is won by odd.
func (r *Result) OddWinsFirst() bool {
	return len(r.Winners) > 0 && r.Winners[0] == arena.Odd
}

// Run benchmarks every game. The context is checked before each solve; on
// cancellation the partial report is returned with the context error.
func Run(ctx context.Context, games []Game, opts Options) (*Report, error) {
	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = solver.Strategies()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	report := &Report{Strategies: slices.Clone(strategies)}
	for _, g := range games {
		if err := g.Arena.Validate(); err != nil {
			return report, fmt.Errorf("%s: %w", g.Name, err)
		}
		row := Row{
			Game:     g.Name,
			Vertices: g.Arena.Size(),
			Edges:    g.Arena.EdgeCount(),
			Agree:    true,
		}
		var reference []arena.Player
		for _, st := range strategies {
			res, runs, err := runStrategy(ctx, g.Arena, st, opts)
			if err != nil {
				return report, fmt.Errorf("%s: %s: %w", g.Name, st, err)
			}
			for _, winners := range runs {
				if reference == nil {
					reference = winners
				} else if !slices.Equal(reference, winners) {
					row.Agree = false
				}
			}
			row.Results = append(row.Results, res)
		}
		if !row.Agree {
			logger.Warn("strategies disagree", "game", g.Name)
		}
		logger.Debug("benchmarked game", "game", g.Name, "vertices", row.Vertices)
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// runStrategy solves a with one strategy, repeating randomized strategies.
// It returns the aggregated result and the winners of every run.
func runStrategy(ctx context.Context, a *arena.Arena, st solver.Strategy, opts Options) (Result, [][]arena.Player, error) {
	runs := 1
	if st.IsRandomized() && opts.Repeat > 1 {
		runs = opts.Repeat
	}

	res := Result{Strategy: st, Runs: runs}
	lifts := make([]float64, 0, runs)
	times := make([]float64, 0, runs)
	var outcomes [][]arena.Player

	for i := range runs {
		if err := ctx.Err(); err != nil {
			return res, nil, err
		}
		seed := opts.Seed
		if seed == 0 {
			seed = solver.DefaultSeed
		}
		s := solver.New(a,
			solver.WithSeed(seed+int64(i)),
			solver.WithLockPolicy(opts.LockPolicy),
			solver.WithLogger(opts.Logger),
		)
		start := time.Now()
		winners, err := s.Solve(st)
		elapsed := time.Since(start)
		if err != nil {
			return res, nil, err
		}
		if i == 0 {
			res.Lifts = s.Stats().Lifts
			res.Duration = elapsed
			res.Stats = s.Stats()
			res.Winners = winners
		}
		lifts = append(lifts, float64(s.Stats().Lifts))
		times = append(times, float64(elapsed.Microseconds()))
		outcomes = append(outcomes, winners)
	}

	res.LiftsMean, res.LiftsStd = meanStdDev(lifts)
	res.TimeMean, res.TimeStd = meanStdDev(times)
	return res, outcomes, nil
}

// meanStdDev returns the mean and sample standard deviation of xs. A single
// sample has zero deviation.
func meanStdDev(xs []float64) (mean, std float64) {
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
