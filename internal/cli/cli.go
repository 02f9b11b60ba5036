// Package cli implements the papg command-line interface.
//
// # Commands
//
// The main commands are:
//   - solve: Solve a game with one strategy, or all of them
//   - bench: Compare every strategy over a set of games
//   - render: Draw a solved game as DOT, SVG, PNG or PDF
//   - info: Print a structural summary of a game
//   - explore: Browse vertices, winners and measures interactively
//   - serve: Run the HTTP API
//   - cache: Manage the solution cache
//
// # Configuration
//
// Defaults come from an optional TOML file, see [Config]. Flags override
// file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/papg/pkg/buildinfo"
	"github.com/matzehuels/papg/pkg/cache"
	"github.com/matzehuels/papg/pkg/observability"
	"github.com/matzehuels/papg/pkg/pipeline"
	"github.com/matzehuels/papg/pkg/solver"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "papg"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level. At debug level pipeline, cache
// and HTTP events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "papg solves parity games with small progress measures",
		Long:         `papg solves parity games with Jurdziński's small progress measures algorithm, comparing lifting strategies, rendering winning regions and serving solutions over HTTP.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/papg/config.toml)")

	// Register all subcommands
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if ns := c.cfg.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	r := pipeline.NewRunner(ch, keyer, c.Logger)
	r.TTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

// newCache opens the configured backend. An unusable file cache directory
// disables caching instead of failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.cfg.Cache.RedisAddr,
			Password: c.cfg.Cache.RedisPassword,
			DB:       c.cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return rc, nil
	}
	dir := c.cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// solveOptions builds pipeline options from the config and the shared
// solve flags. Flags win when set.
func (c *CLI) solveOptions(cmd *cobra.Command, f *solveFlags) pipeline.Options {
	opts := pipeline.Options{
		Strategy:   c.cfg.Strategy,
		Seed:       c.cfg.Seed,
		LockPolicy: c.cfg.LockPolicy,
		Refresh:    f.refresh,
		Logger:     loggerFromContext(cmd.Context()),
	}
	if cmd.Flags().Changed("strategy") {
		opts.Strategy = f.strategy
	}
	if cmd.Flags().Changed("seed") {
		opts.Seed = f.seed
	}
	if cmd.Flags().Changed("lock-policy") {
		opts.LockPolicy = f.lockPolicy
	}
	return opts
}

// solveFlags are the flags shared by the commands that solve games.
type solveFlags struct {
	strategy   string
	seed       int64
	lockPolicy string
	noCache    bool
	refresh    bool
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "", "lifting strategy (see papg solve --help)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "seed for the random strategies")
	cmd.Flags().StringVar(&f.lockPolicy, "lock-policy", "", "lock policy for the propagation strategies: safe, eager")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the solution cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached solutions")
	registerCompletions(cmd, map[string]cobra.CompletionFunc{
		"strategy":    completeOne(strategyNames()...),
		"lock-policy": completeOne(solver.LockSafe.String(), solver.LockEager.String()),
	})
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/papg/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/papg/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
