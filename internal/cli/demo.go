package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/alchemy/internal/demo"
)

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the user/product walkthrough",
		Long: `Create the demo tables and run every entity operation against them:
save, create, all, get, update, join filters, count and delete.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger(cmd.ErrOrStderr(), rootOpts.Verbose)
			client, closeFn, err := openClient(cmd.Context(), rootOpts, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				out = io.Discard
			}
			report, err := demo.Run(cmd.Context(), client, out)
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return nil
		},
	}
}
