package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func NewListCommand() *cobra.Command {
	var limit int
	var filterCategory string
	var popularOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog tools",
		Long:  `List tools in catalog order with filtering options.`,
		Example: `  # List every tool
  toolfind list

  # List tools in one category
  toolfind list --category css

  # List popular tools
  toolfind list --popular --limit 6`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), limit, filterCategory, popularOnly)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of tools to list (0 for all)")
	cmd.Flags().StringVar(&filterCategory, "category", "", "Filter by category id")
	cmd.Flags().BoolVar(&popularOnly, "popular", false, "Only list popular tools")

	return cmd
}

func runList(out io.Writer, limit int, category string, popularOnly bool) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	tools := env.catalog.Tools()
	switch {
	case popularOnly:
		tools = env.catalog.Popular(env.catalog.Len())
	case category != "":
		if _, ok := env.catalog.CategoryOf(category); !ok {
			return fmt.Errorf("unknown category: %s", category)
		}
		tools = env.catalog.InCategory(category)
	}
	if popularOnly && category != "" {
		filtered := tools[:0:0]
		for _, tool := range tools {
			if tool.Category == category {
				filtered = append(filtered, tool)
			}
		}
		tools = filtered
	}
	if limit > 0 && len(tools) > limit {
		tools = tools[:limit]
	}

	if len(tools) == 0 {
		fmt.Fprintln(out, "No tools found.")
		return nil
	}

	for _, tool := range tools {
		fmt.Fprintf(out, "[%s] %s\n", tool.Slug, tool.Name)
		fmt.Fprintf(out, "  Category: %s", env.categoryName(tool.Category))
		if tool.Popular {
			fmt.Fprint(out, " | Popular")
		}
		if len(tool.Keywords) > 0 {
			fmt.Fprintf(out, " | Keywords: %s", strings.Join(tool.Keywords, ", "))
		}
		fmt.Fprintf(out, "\n  %s\n\n", env.toolURL(tool.Slug))
	}

	return nil
}
