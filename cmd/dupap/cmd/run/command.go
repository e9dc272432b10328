// Package run provides the command that performs one reconciliation pass.
package run

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dupap/internal/cmd/application"
	"github.com/agentstation/dupap/internal/cmd/output"
	"github.com/agentstation/dupap/pkg/reconcile"
)

// NewCommand creates the run command.
func NewCommand(app application.Application) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "run",
		GroupID: "core",
		Short:   "Quarantine offline duplicates and delete expired ones",
		Long: `Run performs one reconciliation pass against XIQ:

  1. Devices whose grace period has elapsed are deleted, and records for
     devices that no longer exist are dropped.
  2. Offline, managed devices that share a hostname with another device
     are unmanaged and added to the quarantine cloud config group.
  3. The quarantine store is rewritten if any record changed.

Any failed API call stops the run without saving the store.

The store (monitor_unmanaged.json) and log file (dupap.log) default to
relative paths, resolved against the working directory. Under cron that is
usually $HOME, so set store_path and log_file (or --store) to absolute paths
or cd into the deployment directory first.`,
		Example: `  dupap run                 # Reconcile and print a summary
  dupap run --dry-run       # Show what would change
  dupap run -o json         # Machine-readable summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := app.Reconciler()
			if err != nil {
				return err
			}

			var report *reconcile.Report
			if dryRun {
				_, report, err = r.Preview(cmd.Context())
			} else {
				report, err = r.Run(cmd.Context())
			}
			if err != nil {
				return err
			}

			return render(cmd, app, report)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute the plan without calling any mutating API or saving the store")

	return cmd
}

func render(cmd *cobra.Command, app application.Application, report *reconcile.Report) error {
	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	if format.IsTable() {
		return formatter.Format(cmd.OutOrStdout(), output.ReportTable(report))
	}
	return formatter.Format(cmd.OutOrStdout(), report)
}
