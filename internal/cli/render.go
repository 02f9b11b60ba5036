package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/papg/pkg/errors"
	"github.com/matzehuels/papg/pkg/pipeline"
	"github.com/matzehuels/papg/pkg/render"
)

type renderOpts struct {
	solveFlags
	output   string
	formats  string
	detailed bool
	measures bool
	unsolved bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <game>",
		Short: "Draw a game coloured by winner",
		Long: `Solve a game and draw it with Graphviz. Even vertices are diamonds, odd
vertices boxes; fills show the winner and dashed edges leave a winning region.

PDF output requires rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "add ids and owners to labels")
	cmd.Flags().BoolVar(&opts.measures, "measures", false, "add the final progress measure to labels")
	cmd.Flags().BoolVar(&opts.unsolved, "unsolved", false, "draw the game without solving it")
	registerCompletions(cmd, map[string]cobra.CompletionFunc{
		"format": completeList("svg", "dot", "png", "pdf"),
	})

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	formats, err := parseFormats(opts.formats)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := perrors.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	a, err := runner.Load(ctx, path)
	if err != nil {
		return err
	}

	var res *pipeline.Result
	if !opts.unsolved {
		res, err = runner.Solve(ctx, a, c.solveOptions(cmd, &opts.solveFlags))
		if err != nil {
			return err
		}
	}

	prog := newProgress(loggerFromContext(ctx))
	for _, f := range formats {
		data, err := runner.Render(ctx, a, res, pipeline.RenderOptions{
			Format:   f,
			Detailed: opts.detailed,
			Measures: opts.measures,
		})
		if err != nil {
			return err
		}
		dst := outputPath(path, opts.output, f, len(formats) > 1)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
		printFile(out, dst)
	}
	prog.done("rendered", "formats", len(formats))
	return nil
}

// parseFormats parses a comma-separated format list. Empty selects SVG.
func parseFormats(s string) ([]render.Format, error) {
	if strings.TrimSpace(s) == "" {
		return []render.Format{render.FormatSVG}, nil
	}
	var out []render.Format
	for _, name := range strings.Split(s, ",") {
		f, err := render.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// outputPath picks the file for one format. Without -o the game path with
// the format's extension is used. With several formats -o is a base path
// whose extension is replaced.
func outputPath(input, output string, f render.Format, multi bool) string {
	base := output
	if base == "" || multi {
		if base == "" {
			base = input
		}
		base = strings.TrimSuffix(base, ".gz")
		base = strings.TrimSuffix(base, filepath.Ext(base))
		return base + "." + string(f)
	}
	return output
}
