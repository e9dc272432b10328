package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/dupap/internal/cmd/output"
	"github.com/agentstation/dupap/pkg/errors"
)

// Execute runs the dupap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "dupap",
		Short:   "Quarantine and retire duplicate-named access points in XIQ",
		Version: a.version,
		Long: `dupap finds access points in ExtremeCloud IQ that share a hostname,
unmanages the offline copies, collects them in a cloud config group and
deletes them once their grace period has elapsed.

It is meant to be run periodically by a scheduler such as cron. Each run
reads the whole inventory, acts on it once and exits.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.dupap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.config.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.config.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.config.Format, "format", "o", "", "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().StringVar(&a.config.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	rootCmd.PersistentFlags().StringVar(&a.config.StorePath, "store", a.config.StorePath, "quarantine store file")

	rootCmd.SetVersionTemplate("dupap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	verbose := mustGetBool(cmd, "verbose")
	quiet := mustGetBool(cmd, "quiet")
	noColor := mustGetBool(cmd, "no-color")
	format := mustGetString(cmd, "format")
	logLevel := mustGetString(cmd, "log-level")
	storePath := mustGetString(cmd, "store")

	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	// An explicit config file replaces what New loaded from the default locations.
	if configFile := mustGetString(cmd, "config"); configFile != "" {
		config, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(verbose, quiet, noColor, format, logLevel)
	if cmd.Flags().Changed("store") {
		a.config.StorePath = storePath
	}

	logger := NewLogger(a.config)
	a.logger = &logger

	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(a.CreateRunCommand())
	rootCmd.AddCommand(a.CreateDuplicatesCommand())
	rootCmd.AddCommand(a.CreateStoreCommand())

	rootCmd.AddCommand(a.CreateVersionCommand())
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		msg := err.Error() + "\n"
		if hint := errorHint(err); hint != "" {
			msg += hint + "\n"
		}
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(msg)
		os.Exit(1)
	}
}

// errorHint returns a follow-up line for failures the operator can act on.
func errorHint(err error) string {
	switch {
	case errors.IsTokenRequired(err):
		return "Hint: set XIQ_TOKEN (or DUPAP_XIQ_TOKEN), or xiq_token in the config file."
	case errors.IsRateLimited(err):
		return "Hint: XIQ rate limit reached. The store was not saved; the next run retries."
	case errors.IsRemoteCall(err):
		return "Hint: the XIQ call failed. The store was not saved; the next run retries."
	case errors.IsValidationError(err):
		return "Hint: check the configuration values."
	}
	return ""
}

// mustGetBool retrieves a boolean flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
