package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/papg/pkg/arena"
	perrors "github.com/matzehuels/papg/pkg/errors"
	pgio "github.com/matzehuels/papg/pkg/io"
	"github.com/matzehuels/papg/pkg/pipeline"
	"github.com/matzehuels/papg/pkg/solver"
)

// winnersPreview is the number of winners printed without --full.
const winnersPreview = 16

type solveCmdOpts struct {
	solveFlags
	all      bool
	full     bool
	jsonPath string
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveCmdOpts

	names := make([]string, 0, len(solver.Strategies()))
	for _, st := range solver.Strategies() {
		names = append(names, string(st))
	}

	cmd := &cobra.Command{
		Use:   "solve <game>",
		Short: "Solve a parity game",
		Long: `Solve a parity game in PGSolver or JSON format and print the winner of every vertex.

Strategies: ` + strings.Join(names, ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.all, "all", false, "run every strategy")
	cmd.Flags().BoolVar(&opts.full, "full", false, "print the winner of every vertex")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "write the solution as JSON to this file (- for stdout)")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, path string, opts *solveCmdOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	a, err := runner.Load(ctx, path)
	if err != nil {
		return err
	}
	popts := c.solveOptions(cmd, &opts.solveFlags)

	var results []*pipeline.Result
	if opts.all {
		results, err = runner.SolveAll(ctx, a, popts)
	} else {
		var res *pipeline.Result
		res, err = runner.Solve(ctx, a, popts)
		results = []*pipeline.Result{res}
	}
	if err != nil {
		return err
	}

	limit := winnersPreview
	if opts.full {
		limit = 0
	}
	printSolve(out, path, a, results, limit)

	if opts.jsonPath != "" {
		return writeSolutionJSON(out, a, results[0].Winners, opts.jsonPath)
	}
	return nil
}

// printSolve prints the outcome of one or more strategies on a game.
func printSolve(w io.Writer, path string, a *arena.Arena, results []*pipeline.Result, limit int) {
	first := results[0]
	fmt.Fprintln(w, StyleTitle.Render(path))
	printStats(w, a.Size(), a.EdgeCount(), allCached(results))
	printNewline(w)

	printKeyValue(w, "winners", winnersLine(first.Winners, limit))
	printKeyValue(w, "even wins", strconv.Itoa(len(first.WonBy(arena.Even))))
	printKeyValue(w, "odd wins", strconv.Itoa(len(first.WonBy(arena.Odd))))
	printNewline(w)

	if len(results) == 1 {
		printKeyValue(w, "strategy", string(first.Strategy))
		printKeyValue(w, "lifts", strconv.Itoa(first.Stats.Lifts))
		printKeyValue(w, "recursion depth", strconv.Itoa(first.Stats.MaxRecursionDepth))
		printKeyValue(w, "locked", strconv.Itoa(first.Stats.Locked))
		printKeyValue(w, "time", first.Duration.String())
		return
	}

	t := newTable("strategy", "lifts", "depth", "locked", "time", "")
	agree := true
	for _, res := range results {
		status := iconFresh
		if res.CacheHit {
			status = iconCached
		}
		if !slices.Equal(res.Winners, first.Winners) {
			agree = false
			status = styleIconError.Render(iconError + " disagrees")
		}
		t.Row(string(res.Strategy),
			strconv.Itoa(res.Stats.Lifts),
			strconv.Itoa(res.Stats.MaxRecursionDepth),
			strconv.Itoa(res.Stats.Locked),
			res.Duration.String(),
			status)
	}
	fmt.Fprintln(w, t.Render())
	if agree {
		printSuccess(w, "all %d strategies agree", len(results))
	} else {
		printWarning(w, "strategies disagree on the winners")
	}
}

func allCached(results []*pipeline.Result) bool {
	for _, r := range results {
		if !r.CacheHit {
			return false
		}
	}
	return true
}

// writeSolutionJSON writes the game with its winners to path, or to w when
// path is "-".
func writeSolutionJSON(w io.Writer, a *arena.Arena, winners []arena.Player, path string) error {
	if path == "-" {
		return pgio.WriteJSON(a, winners, w)
	}
	if err := perrors.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := pgio.ExportJSON(a, winners, path); err != nil {
		return err
	}
	printFile(w, path)
	return nil
}

// stdoutIsTerminal reports whether standard output is a character device.
func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
