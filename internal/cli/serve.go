package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/papg/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve the solver over HTTP.

Endpoints:
  GET  /healthz      liveness probe
  GET  /version      build information
  GET  /strategies   available lifting strategies
  POST /solve        solve the game in the request body
  POST /render       render the game in the request body

Games are sent in PGSolver format, or as JSON with Content-Type: application/json.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}
			srv := server.New(server.Config{
				Addr:            addr,
				Runner:          runner,
				Logger:          c.Logger,
				MaxBodyBytes:    c.cfg.Server.MaxBodyBytes,
				MaxVertices:     c.cfg.Server.MaxVertices,
				MaxPriority:     c.cfg.Server.MaxPriority,
				MaxMeasureCells: c.cfg.Server.MaxMeasureCells,
				SolveTimeout:    c.cfg.Server.Timeout.Duration,
			})
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the solution cache")
	return cmd
}
