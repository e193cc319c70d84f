package tui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jasperwreed/toolfind/internal/catalog"
	"github.com/jasperwreed/toolfind/internal/models"
	"github.com/jasperwreed/toolfind/internal/watcher"
)

// Browser runs the catalog browser with its command palette.
type Browser struct {
	opts    Options
	watcher *watcher.CatalogWatcher
}

func NewBrowser(opts Options) *Browser {
	return &Browser{opts: opts}
}

// WithWatcher hot-reloads the catalog while the browser runs.
func (b *Browser) WithWatcher(w *watcher.CatalogWatcher) *Browser {
	b.watcher = w
	return b
}

func (b *Browser) Run() error {
	m := NewModel(b.opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if b.watcher != nil {
		b.watcher.AddHandler(func(cat *catalog.Catalog) error {
			p.Send(CatalogReloadedMsg{Catalog: cat})
			return nil
		})
		b.watcher.Start()
		defer func() {
			if err := b.watcher.Stop(); err != nil {
				log.Printf("failed to stop catalog watcher: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// CatalogReloadedMsg swaps a freshly loaded catalog into a running model.
type CatalogReloadedMsg struct {
	Catalog *catalog.Catalog
}

type listItem struct {
	tool     models.Tool
	category models.Category
}

func (i listItem) FilterValue() string {
	return i.tool.Name
}

func (i listItem) Title() string {
	return catalog.Icon(i.tool.Category) + " " + i.tool.Name
}

func (i listItem) Description() string {
	name := i.category.Name
	if name == "" {
		name = i.tool.Category
	}
	if i.tool.Description == "" {
		return name
	}
	return fmt.Sprintf("%s | %s", name, i.tool.Description)
}
