package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [catalog.json]",
		Short: "Check a catalog file",
		Long:  `Check that tool ids and slugs are unique and that every category resolves.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := catalogPath
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd.OutOrStdout(), path)
		},
	}

	return cmd
}

var errInvalidCatalog = errors.New("catalog is invalid")

func runValidate(out io.Writer, path string) error {
	catalogPath = path
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	name := env.catalogPath
	if name == "" {
		name = "built-in catalog"
	}

	if err := env.catalog.Validate(); err != nil {
		fmt.Fprintf(out, "%s: problems found\n", name)
		var joined interface{ Unwrap() []error }
		if errors.As(err, &joined) {
			for _, e := range joined.Unwrap() {
				fmt.Fprintf(out, "  - %v\n", e)
			}
		} else {
			fmt.Fprintf(out, "  - %v\n", err)
		}
		return errInvalidCatalog
	}

	stats := env.catalog.Stats()
	fmt.Fprintf(out, "%s: OK (%d tools, %d categories)\n", name, stats.TotalTools, stats.CategoryCount)
	return nil
}
