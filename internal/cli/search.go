package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jasperwreed/toolfind/internal/palette"
	"github.com/spf13/cobra"
)

func NewSearchCommand() *cobra.Command {
	var open bool
	var showDescription bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the tool catalog",
		Long:  `Fuzzy-search tool names, keywords, categories and descriptions. Typos are tolerated.`,
		Example: `  # Find JSON tools, even with a typo
  toolfind search jsno

  # Multi-word queries
  toolfind search css minifier

  # Open the best match and remember the query
  toolfind search base64 --open`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if err := NewValidator().ValidateQuery(query); err != nil {
				return err
			}
			return runSearch(cmd.OutOrStdout(), query, open, showDescription)
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "Open the top result and record the query in history")
	cmd.Flags().BoolVar(&showDescription, "description", false, "Show tool descriptions")

	return cmd
}

// printNavigator is the palette's navigator for non-interactive use: it
// prints where the browser would go.
type printNavigator struct {
	out io.Writer
	env *environment
}

func (n printNavigator) OpenTool(slug string) {
	fmt.Fprintf(n.out, "Opening %s\n", n.env.toolURL(slug))
}

func (n printNavigator) OpenCategory(id string) {
	fmt.Fprintf(n.out, "Opening category %s\n", n.env.categoryName(id))
}

func runSearch(out io.Writer, query string, open bool, showDescription bool) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	if open {
		if err := env.openHistory(); err != nil {
			return err
		}
		m := palette.New(env.searcher, env.history, printNavigator{out: out, env: env})
		m.SetQuery(query)
		if !m.Commit() {
			fmt.Fprintln(out, "No results found.")
		}
		return nil
	}

	results := env.searcher.Rank(query)
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d result(s) for '%s':\n\n", len(results), strings.TrimSpace(query))

	for i, result := range results {
		tool := result.Tool
		fmt.Fprintf(out, "%d. %s [%s]\n", i+1, tool.Name, tool.Slug)
		fmt.Fprintf(out, "   %s | score %.3f (%s)\n", env.categoryName(tool.Category), result.Score, result.Field)
		fmt.Fprintf(out, "   %s\n", env.toolURL(tool.Slug))
		if showDescription && tool.Description != "" {
			fmt.Fprintf(out, "   %s\n", tool.Description)
		}
		fmt.Fprintln(out)
	}

	return nil
}
