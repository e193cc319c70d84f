package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Long:  `Show the recent-queries list, most recent first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryClear(cmd.OutOrStdout())
		},
	})

	return cmd
}

func runHistory(out io.Writer) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.openHistory(); err != nil {
		return err
	}

	entries := env.history.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No recent searches.")
		return nil
	}

	for i, q := range entries {
		fmt.Fprintf(out, "%2d. %s\n", i+1, q)
	}
	return nil
}

func runHistoryClear(out io.Writer) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.openHistory(); err != nil {
		return err
	}

	n := env.history.Len()
	env.history.Clear()
	fmt.Fprintf(out, "Cleared %d recent search(es).\n", n)
	return nil
}
