package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jasperwreed/toolfind/internal/catalog"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// ReloadHandler receives each freshly loaded catalog.
type ReloadHandler func(cat *catalog.Catalog) error

// CatalogWatcher reloads a catalog file whenever it changes on disk.
type CatalogWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	handlers []ReloadHandler
	mu       sync.RWMutex
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	loads    int
}

// NewCatalogWatcher watches the directory holding path. Watching the
// directory rather than the file survives editors that save by rename.
func NewCatalogWatcher(path string, debounce time.Duration) (*CatalogWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve catalog path: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(abs), err)
	}

	return &CatalogWatcher{
		watcher:  fsWatcher,
		path:     abs,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// Path is the absolute catalog path being watched.
func (w *CatalogWatcher) Path() string {
	return w.path
}

func (w *CatalogWatcher) AddHandler(handler ReloadHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// reloads reports how many successful reloads have been delivered.
func (w *CatalogWatcher) reloads() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loads
}

func (w *CatalogWatcher) Start() {
	w.wg.Add(1)
	go w.watchLoop()
}

// Stop terminates the watch loop and closes the fs watcher. Safe to call
// more than once.
func (w *CatalogWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		err = w.watcher.Close()
	})
	return err
}

func (w *CatalogWatcher) watchLoop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("catalog watcher error: %v", err)
		}
	}
}

func (w *CatalogWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// reload keeps the previous catalog in place when the new file does not
// parse or validate.
func (w *CatalogWatcher) reload() {
	cat, err := catalog.Load(w.path)
	if err != nil {
		log.Printf("catalog reload skipped: %v", err)
		return
	}
	if err := cat.Validate(); err != nil {
		log.Printf("catalog reload skipped, invalid catalog: %v", err)
		return
	}

	w.mu.Lock()
	w.loads++
	handlers := make([]ReloadHandler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	log.Printf("catalog reloaded: %d tools from %s", cat.Len(), w.path)
	for _, handler := range handlers {
		if err := handler(cat); err != nil {
			log.Printf("catalog reload handler error: %v", err)
		}
	}
}
