package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/papg/pkg/analysis"
)

type infoOpts struct {
	hubs   int
	asJSON bool
}

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var opts infoOpts

	cmd := &cobra.Command{
		Use:   "info <game>",
		Short: "Print a structural summary of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, true)
			if err != nil {
				return err
			}
			a, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			s := analysis.Summarize(a, analysis.Options{Hubs: opts.hubs})
			if opts.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(s)
			}
			printSummary(cmd.OutOrStdout(), args[0], s)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.hubs, "hubs", 5, "number of PageRank hubs to list (0 disables)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the summary as JSON")

	return cmd
}

func printSummary(w io.Writer, path string, s analysis.Summary) {
	fmt.Fprintln(w, StyleTitle.Render(path))
	printKeyValue(w, "vertices", strconv.Itoa(s.Vertices))
	printKeyValue(w, "edges", strconv.Itoa(s.Edges))
	printKeyValue(w, "owned by even", strconv.Itoa(s.EvenOwned))
	printKeyValue(w, "owned by odd", strconv.Itoa(s.OddOwned))
	printKeyValue(w, "self-loops", strconv.Itoa(s.SelfLoops))
	printKeyValue(w, "max priority", strconv.Itoa(s.MaxPriority))
	printKeyValue(w, "out-degree", fmt.Sprintf("max %d, mean %.2f ± %.2f", s.MaxOutDegree, s.MeanOutDegree, s.StdOutDegree))
	printKeyValue(w, "in-degree", fmt.Sprintf("max %d", s.MaxInDegree))
	printKeyValue(w, "SCCs", fmt.Sprintf("%d (%d nontrivial, largest %d)", s.SCCs, s.NontrivialSCCs, s.LargestSCC))
	if len(s.Hubs) > 0 {
		ids := make([]string, len(s.Hubs))
		for i, id := range s.Hubs {
			ids[i] = strconv.Itoa(id)
		}
		printKeyValue(w, "hubs", strings.Join(ids, ", "))
	}

	printNewline(w)
	t := newTable("priority", "vertices")
	for p, n := range s.PriorityHistogram {
		if n > 0 {
			t.Row(strconv.Itoa(p), strconv.Itoa(n))
		}
	}
	fmt.Fprintln(w, t.Render())
}
