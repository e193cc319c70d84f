package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Long:  `Display tool counts per category, popular tools and the size of the search history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout())
		},
	}

	return cmd
}

func runStats(out io.Writer) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.openHistory(); err != nil {
		return err
	}

	stats := env.catalog.Stats()

	fmt.Fprintln(out, "toolfind Statistics")
	fmt.Fprintln(out, "===================")
	fmt.Fprintf(out, "\nTotal Tools: %d\n", stats.TotalTools)
	fmt.Fprintf(out, "Popular Tools: %d\n", stats.PopularTools)
	fmt.Fprintf(out, "Categories: %d\n", stats.CategoryCount)
	fmt.Fprintf(out, "Recent Searches: %d/%d\n", env.history.Len(), env.history.Capacity())
	if env.store != nil {
		fmt.Fprintf(out, "History Database: %s\n", env.store.Path())
	}

	if len(stats.CategoryBreakdown) > 0 {
		fmt.Fprintln(out, "\nTools by Category:")
		for _, cat := range env.catalog.Categories() {
			fmt.Fprintf(out, "  %s: %d\n", cat.Name, stats.CategoryBreakdown[cat.ID])
		}
	}

	return nil
}
