package cli

import (
	"fmt"
	"io"

	"github.com/jasperwreed/toolfind/internal/catalog"
	"github.com/spf13/cobra"
)

func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show what the palette offers before you type",
		Long:  `Print the empty-query view: quick categories, popular tools and recent searches.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(cmd.OutOrStdout())
		},
	}

	return cmd
}

func runCategories(out io.Writer) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.openHistory(); err != nil {
		return err
	}

	fmt.Fprintln(out, "Quick categories:")
	for _, cat := range env.catalog.QuickCategories() {
		fmt.Fprintf(out, "  %s %s\n", catalog.Icon(cat.ID), cat.Name)
	}

	popular := env.catalog.Popular(env.cfg.Popular.Count)
	popular = popular[:min(len(popular), env.cfg.Popular.Display)]
	fmt.Fprintln(out, "\nPopular tools:")
	for _, tool := range popular {
		fmt.Fprintf(out, "  %s %s  %s\n", catalog.Icon(tool.Category), tool.Name, env.toolURL(tool.Slug))
	}

	recent := env.history.Recent(env.cfg.History.Display)
	if len(recent) > 0 {
		fmt.Fprintln(out, "\nRecent searches:")
		for _, q := range recent {
			fmt.Fprintf(out, "  %s\n", q)
		}
	}

	return nil
}
