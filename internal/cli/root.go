package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath      string
	configPath  string
	catalogPath string
	noPersist   bool
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "toolfind",
		Short: "Command-palette search over a catalog of mini-tools",
		Long: `toolfind - Browse a catalog of CSS, SVG, text, color and developer tools
and jump to any of them with a fuzzy, typo-tolerant command palette.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (default: ~/.toolfind/toolfind.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/toolfind/config.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a JSON catalog (default: built-in catalog)")
	rootCmd.PersistentFlags().BoolVar(&noPersist, "no-persist", false, "Keep search history in memory only")

	rootCmd.AddCommand(
		NewBrowseCommand(),
		NewSearchCommand(),
		NewListCommand(),
		NewHistoryCommand(),
		NewCategoriesCommand(),
		NewValidateCommand(),
		NewStatsCommand(),
	)

	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
