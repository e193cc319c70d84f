package cli

import (
	"fmt"

	"github.com/jasperwreed/toolfind/internal/catalog"
	"github.com/jasperwreed/toolfind/internal/config"
	"github.com/jasperwreed/toolfind/internal/history"
	"github.com/jasperwreed/toolfind/internal/search"
	"github.com/jasperwreed/toolfind/internal/storage"
)

// environment is what every command needs: configuration, the catalog,
// a searcher over it and, when requested, the persisted history.
type environment struct {
	cfg         *config.Config
	catalog     *catalog.Catalog
	catalogPath string
	searcher    *search.Searcher
	store       *storage.SQLiteStore
	history     *history.Store
}

func loadEnvironment() (*environment, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	source := catalogPath
	if source == "" {
		source = cfg.Catalog.Path
	}
	source, err = NewValidator().ValidateCatalogPath(source)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(source)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:         cfg,
		catalog:     cat,
		catalogPath: source,
		searcher:    search.NewSearcher(search.NewIndex(cat.Tools()), searchOptions(cfg)),
	}, nil
}

func searchOptions(cfg *config.Config) search.Options {
	return search.Options{
		MaxResults: cfg.Search.MaxResults,
		Threshold:  cfg.Search.Threshold,
	}
}

// openHistory loads the recent-queries list from the database, or keeps
// it in memory with --no-persist.
func (e *environment) openHistory() error {
	if noPersist || !e.cfg.History.Persist {
		e.history = history.NewStore(storage.NewMemoryStore(), e.cfg.History.Capacity)
		return nil
	}

	database := dbPath
	if database == "" {
		database = e.cfg.Storage.Path
	}

	store, err := storage.NewSQLiteStore(database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	e.store = store
	e.history = history.NewStore(store, e.cfg.History.Capacity)
	e.history.Load()
	return nil
}

func (e *environment) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

func (e *environment) toolURL(slug string) string {
	return e.cfg.ToolURL(slug)
}

func (e *environment) categoryName(id string) string {
	if cat, ok := e.catalog.CategoryOf(id); ok {
		return cat.Name
	}
	return id
}
