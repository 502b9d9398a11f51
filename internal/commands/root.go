package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tellerkit/teller/internal/buildinfo"
	"github.com/tellerkit/teller/internal/config"
)

type globalOptions struct {
	configPath string
	dbPath     string
	logLevel   string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "teller",
		Short:   "PIN-protected bank accounts in a single JSON ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", config.FileName, "path to teller.yaml")
	flags.StringVar(&opts.dbPath, "db", "", "ledger file (overrides store.path)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newInitCommand(),
		newCreateCommand(opts),
		newDepositCommand(opts),
		newWithdrawCommand(opts),
		newDetailsCommand(opts),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
		newStatusCommand(opts),
	)

	return rootCmd
}
