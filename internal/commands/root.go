package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "bankfeed",
		Short:   "Staged bank statement imports into a normalized ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "bankfeed.yaml", "path to configuration file")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand(&configPath))
	rootCmd.AddCommand(newSessionsCommand(&configPath))
	rootCmd.AddCommand(newRowsCommand(&configPath))
	rootCmd.AddCommand(newCommitCommand(&configPath))
	rootCmd.AddCommand(newSuggestCommand(&configPath))
	rootCmd.AddCommand(newSweepCommand(&configPath))
	rootCmd.AddCommand(newLedgerCommand(&configPath))

	return rootCmd
}
