package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/alchemy"
	"github.com/syssam/alchemy/internal/demo"
	"github.com/syssam/alchemy/schema"
)

// MigrateResult is the json output of the migrate command.
type MigrateResult struct {
	Dialect string   `json:"dialect"`
	Tables  []string `json:"tables"`
}

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the demo tables",
		Long: `Create the user and product tables if they do not exist.

Tables are created in foreign-key order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, rootOpts)
		},
	}
}

func runMigrate(cmd *cobra.Command, opts *RootOptions) error {
	tables, err := schema.Sort(demo.Tables())
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), opts.Verbose)
	client, closeFn, err := openClient(cmd.Context(), opts, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	result := MigrateResult{Dialect: client.Dialect()}
	for _, t := range tables {
		d, err := t.Descriptor()
		if err != nil {
			return err
		}
		if !alchemy.MigrateAll(cmd.Context(), client, d) {
			return fmt.Errorf("migrate %s failed, see log", t.Name)
		}
		result.Tables = append(result.Tables, t.Name)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	for _, name := range result.Tables {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", name, result.Dialect)
	}
	return nil
}
