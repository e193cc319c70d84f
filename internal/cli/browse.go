package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jasperwreed/toolfind/internal/tui"
	"github.com/jasperwreed/toolfind/internal/watcher"
	"github.com/spf13/cobra"
)

func NewBrowseCommand() *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog in the TUI",
		Long:  `Open the interactive catalog browser. Press ctrl+k or / to open the command palette.`,
		Example: `  # Browse the built-in catalog
  toolfind browse

  # Browse a custom catalog, reloading it when the file changes
  toolfind browse --catalog ./tools.json

  # Browse without touching the history database
  toolfind browse --no-persist`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(!noWatch)
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Don't reload the catalog when its file changes")

	return cmd
}

func runBrowse(watch bool) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.openHistory(); err != nil {
		return err
	}

	// The renderer owns stdout; logs go to a file or nowhere.
	if env.cfg.Log.File != "" {
		f, err := tea.LogToFile(env.cfg.Log.File, "toolfind")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
		defer log.SetOutput(os.Stderr)
	}

	browser := tui.NewBrowser(tui.Options{
		Catalog:        env.catalog,
		History:        env.history,
		Search:         searchOptions(env.cfg),
		BaseURL:        env.cfg.Site.BaseURL,
		PopularCount:   env.cfg.Popular.Count,
		PopularDisplay: env.cfg.Popular.Display,
		RecentDisplay:  env.cfg.History.Display,
		Debounce:       env.cfg.DebounceDuration(),
		Source:         env.catalogPath,
	})

	if watch && env.catalogPath != "" && env.cfg.Catalog.Watch {
		w, err := watcher.NewCatalogWatcher(env.catalogPath, 0)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: catalog will not reload: %v\n", err)
		} else {
			log.Printf("watching catalog %s", w.Path())
			browser.WithWatcher(w)
		}
	}

	return browser.Run()
}
