// Package duplicates provides a read-only listing of duplicated hostnames.
package duplicates

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dupap/internal/cmd/application"
	"github.com/agentstation/dupap/internal/cmd/output"
)

// NewCommand creates the duplicates command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "duplicates",
		GroupID: "core",
		Aliases: []string{"dups"},
		Short:   "List devices that share a hostname",
		Long: `Duplicates lists every device whose hostname is used by at least one
other device, and marks the ones the next run would unmanage. Nothing is
changed in XIQ or in the store.`,
		Example: `  dupap duplicates           # Table of duplicated devices
  dupap duplicates -o wide   # Include serial numbers and MAC addresses`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := app.Reconciler()
			if err != nil {
				return err
			}

			plan, _, err := r.Preview(cmd.Context())
			if err != nil {
				return err
			}

			rows := output.DuplicateRows(plan.Duplicates, plan.Candidates)
			if len(rows) == 0 {
				app.Logger().Info().Msg("No duplicate hostnames found")
			}

			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)
			if format.IsTable() {
				return formatter.Format(cmd.OutOrStdout(), output.DuplicatesTable(rows, format == output.FormatWide))
			}
			return formatter.Format(cmd.OutOrStdout(), rows)
		},
	}
}
