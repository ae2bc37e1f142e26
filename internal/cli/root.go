// Package cli implements the alchemy command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/syssam/alchemy"
	"github.com/syssam/alchemy/config"
	"github.com/syssam/alchemy/dialect"
	"github.com/syssam/alchemy/dialect/sql"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config  string // path to a YAML or TOML config file
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the alchemy CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "alchemy",
		Short: "alchemy - kwargs-driven SQL mapping",
		Long: `alchemy builds SQL statements from entity descriptors and keyword arguments.

The database is configured with DATABASE_URL or a --config file. Supported
backends are postgres, mysql and sqlite.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (yaml or toml)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log every statement")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))

	return cmd
}

// newLogger returns a text logger writing to w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openClient loads the configuration and opens a client on it. The returned
// function closes the driver and, when statistics are collected, logs the
// statement counters.
func openClient(ctx context.Context, opts *RootOptions, logger *slog.Logger) (*alchemy.Client, func() error, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.Config != "" {
		cfg, err = config.Load(opts.Config)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, nil, err
	}
	cfg.Debug = cfg.Debug || opts.Verbose
	cfg.Logger = logger
	drv, err := config.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() error {
		if stats := statsOf(drv); stats != nil {
			logger.InfoContext(ctx, "statements", "stats", stats.Counters())
		}
		return drv.Close()
	}
	return alchemy.NewClient(drv, alchemy.WithLogger(logger)), closeFn, nil
}

// statsOf returns the StatsDriver of drv, if any.
func statsOf(drv dialect.Driver) *sql.StatsDriver {
	if debug, ok := drv.(*sql.DebugDriver); ok {
		drv = debug.Driver
	}
	stats, _ := drv.(*sql.StatsDriver)
	return stats
}
