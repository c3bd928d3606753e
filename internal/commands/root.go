package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simaogato/finance-dashboard/internal/buildinfo"
	"github.com/simaogato/finance-dashboard/internal/config"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	dataDir    string
	user       string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "finance",
		Short:   "Personal finance dashboard",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	defaultConfig := os.Getenv("FINANCE_CONFIG")
	if defaultConfig == "" {
		defaultConfig = config.DefaultPath
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", defaultConfig, "path to finance.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "override storage.data_dir")
	rootCmd.PersistentFlags().StringVar(&opts.user, "user", "", "signed-in user id (empty: local profile)")

	rootCmd.AddCommand(
		newServeCommand(opts),
		newReportCommand(opts),
		newSnapshotCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newCurrencyCommand(opts),
		newEntityCommand(opts),
		newGoldCommand(opts),
		newResetCommand(opts),
		newTokenCommand(opts),
	)

	return rootCmd
}
