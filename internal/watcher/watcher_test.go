package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jasperwreed/toolfind/internal/catalog"
	"go.uber.org/goleak"
)

const catalogV1 = `{
  "categories": [{"id": "css", "name": "CSS", "color": "#2965f1"}],
  "quickCategories": ["css"],
  "tools": [{"id": "1", "name": "CSS Minifier", "category": "css", "slug": "css-minifier"}]
}`

const catalogV2 = `{
  "categories": [{"id": "css", "name": "CSS", "color": "#2965f1"}],
  "quickCategories": ["css"],
  "tools": [
    {"id": "1", "name": "CSS Minifier", "category": "css", "slug": "css-minifier"},
    {"id": "2", "name": "Box Shadow", "category": "css", "slug": "box-shadow"}
  ]
}`

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
}

func TestCatalogWatcher_ReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, catalogV1)

	w, err := NewCatalogWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCatalogWatcher() error = %v", err)
	}

	reloaded := make(chan *catalog.Catalog, 4)
	w.AddHandler(func(cat *catalog.Catalog) error {
		reloaded <- cat
		return nil
	})
	w.Start()

	writeCatalog(t, path, catalogV2)

	select {
	case cat := <-reloaded:
		if cat.Len() != 2 {
			t.Errorf("reloaded catalog has %d tools, want 2", cat.Len())
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for catalog reload")
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestCatalogWatcher_SkipsInvalidCatalog(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, catalogV1)

	w, err := NewCatalogWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCatalogWatcher() error = %v", err)
	}

	reloaded := make(chan *catalog.Catalog, 4)
	w.AddHandler(func(cat *catalog.Catalog) error {
		reloaded <- cat
		return nil
	})
	w.Start()

	writeCatalog(t, path, `{"tools": [`)

	select {
	case <-reloaded:
		t.Error("handler called for a catalog that does not parse")
	case <-time.After(300 * time.Millisecond):
	}

	if w.reloads() != 0 {
		t.Errorf("reloads() = %d, want 0", w.reloads())
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestCatalogWatcher_IgnoresSiblingFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeCatalog(t, path, catalogV1)

	w, err := NewCatalogWatcher(path, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewCatalogWatcher() error = %v", err)
	}
	w.Start()

	writeCatalog(t, filepath.Join(dir, "other.json"), catalogV2)
	time.Sleep(200 * time.Millisecond)

	if w.reloads() != 0 {
		t.Errorf("reloads() = %d after writing a sibling file, want 0", w.reloads())
	}

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestCatalogWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "catalog.json")
	writeCatalog(t, path, catalogV1)

	w, err := NewCatalogWatcher(path, 0)
	if err != nil {
		t.Fatalf("NewCatalogWatcher() error = %v", err)
	}
	w.Start()

	if err := w.Stop(); err != nil {
		t.Errorf("first Stop() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestNewCatalogWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "catalog.json")
	if _, err := NewCatalogWatcher(path, 0); err == nil {
		t.Error("NewCatalogWatcher() on a missing directory should fail")
	}
}
