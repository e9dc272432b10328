package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/dupap/cmd/dupap/cmd/duplicates"
	"github.com/agentstation/dupap/cmd/dupap/cmd/run"
	"github.com/agentstation/dupap/cmd/dupap/cmd/store"
)

// CreateRunCommand creates the run command with app dependencies.
func (a *App) CreateRunCommand() *cobra.Command {
	return run.NewCommand(a)
}

// CreateDuplicatesCommand creates the duplicates command with app dependencies.
func (a *App) CreateDuplicatesCommand() *cobra.Command {
	return duplicates.NewCommand(a)
}

// CreateStoreCommand creates the store command with app dependencies.
func (a *App) CreateStoreCommand() *cobra.Command {
	return store.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("dupap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
