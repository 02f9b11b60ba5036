package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/papg/pkg/bench"
	"github.com/matzehuels/papg/pkg/cache"
	"github.com/matzehuels/papg/pkg/pipeline"
	"github.com/matzehuels/papg/pkg/solver"
)

type benchOpts struct {
	csv        bool
	repeat     int
	strategies string
	seed       int64
	lockPolicy string
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var opts benchOpts

	cmd := &cobra.Command{
		Use:   "bench <game>...",
		Short: "Compare all strategies over a set of games",
		Long: `Run every strategy on every game and report lift counts, timings and outcomes.

With --csv the three ';'-delimited tables "Lifts:", "Time (µs):" and
"Outcome V0:" are written, one row per game.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBench(cmd, args, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.csv, "csv", false, "write ';'-delimited tables")
	cmd.Flags().IntVar(&opts.repeat, "repeat", 1, "runs per randomized strategy")
	cmd.Flags().StringVar(&opts.strategies, "strategies", "", "comma-separated strategies (default all)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "seed of the first randomized run")
	cmd.Flags().StringVar(&opts.lockPolicy, "lock-policy", "", "lock policy for the propagation strategies: safe, eager")
	registerCompletions(cmd, map[string]cobra.CompletionFunc{
		"strategies":  completeList(strategyNames()...),
		"lock-policy": completeOne(solver.LockSafe.String(), solver.LockEager.String()),
	})

	return cmd
}

func (c *CLI) runBench(cmd *cobra.Command, paths []string, opts *benchOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := loggerFromContext(ctx)

	strategies, err := parseStrategies(opts.strategies)
	if err != nil {
		return err
	}
	policyName := c.cfg.LockPolicy
	if cmd.Flags().Changed("lock-policy") {
		policyName = opts.lockPolicy
	}
	policy, err := solver.ParseLockPolicy(policyName)
	if err != nil {
		return err
	}
	seed := c.cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = opts.seed
	}

	loader := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
	games := make([]bench.Game, 0, len(paths))
	for _, p := range paths {
		a, err := loader.Load(ctx, p)
		if err != nil {
			return err
		}
		games = append(games, bench.Game{Name: p, Arena: a})
	}

	var spin *Spinner
	if !opts.csv && stdoutIsTerminal() {
		spin = newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Benchmarking %d games...", len(games)))
		spin.Start()
	}
	prog := newProgress(logger)
	report, err := bench.Run(ctx, games, bench.Options{
		Strategies: strategies,
		Repeat:     opts.repeat,
		Seed:       seed,
		LockPolicy: policy,
		Logger:     logger,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done("benchmark finished", "games", len(games))

	if opts.csv {
		return bench.WriteCSV(out, report)
	}
	printBench(out, report, opts.repeat > 1)
	return nil
}

// parseStrategies parses a comma-separated list. Empty selects all.
func parseStrategies(s string) ([]solver.Strategy, error) {
	if strings.TrimSpace(s) == "" {
		return solver.Strategies(), nil
	}
	var out []solver.Strategy
	for _, name := range strings.Split(s, ",") {
		st, err := solver.ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// printBench prints the lifts and time tables of a report.
func printBench(w io.Writer, r *bench.Report, spread bool) {
	headers := []string{"game"}
	for _, st := range r.Strategies {
		headers = append(headers, string(st))
	}

	lifts := newTable(append(headers, "agree")...)
	times := newTable(headers...)
	disagree := 0
	for _, row := range r.Rows {
		liftRow := []string{row.Game}
		timeRow := []string{row.Game}
		for _, res := range row.Results {
			if spread && res.Runs > 1 {
				liftRow = append(liftRow, fmt.Sprintf("%.1f ± %.1f", res.LiftsMean, res.LiftsStd))
				timeRow = append(timeRow, fmt.Sprintf("%.0f ± %.0f", res.TimeMean, res.TimeStd))
				continue
			}
			liftRow = append(liftRow, strconv.Itoa(res.Lifts))
			timeRow = append(timeRow, strconv.FormatInt(res.Duration.Microseconds(), 10))
		}
		agree := iconSuccess
		if !row.Agree {
			agree = iconError
			disagree++
		}
		lifts.Row(append(liftRow, agree)...)
		times.Row(timeRow...)
	}

	fmt.Fprintln(w, StyleTitle.Render("Lifts"))
	fmt.Fprintln(w, lifts.Render())
	fmt.Fprintln(w, StyleTitle.Render("Time (µs)"))
	fmt.Fprintln(w, times.Render())
	if disagree > 0 {
		printWarning(w, "strategies disagree on %d of %d games", disagree, len(r.Rows))
		return
	}
	printSuccess(w, "all strategies agree on %d games", len(r.Rows))
}
