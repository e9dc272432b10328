// Package store provides commands to inspect the quarantine store.
package store

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dupap/internal/cmd/application"
	"github.com/agentstation/dupap/internal/cmd/output"
)

// NewCommand creates the store command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "store",
		GroupID: "core",
		Short:   "Inspect the quarantine store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewListCommand(app))

	return cmd
}

// NewListCommand creates the store list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show quarantined devices and their remaining grace time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := app.Store().Load()
			if err != nil {
				return err
			}

			rows := output.RecordRows(records.Unique(), app.Now())

			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)
			if format.IsTable() {
				return formatter.Format(cmd.OutOrStdout(), output.RecordsTable(rows))
			}
			return formatter.Format(cmd.OutOrStdout(), rows)
		},
	}
}
