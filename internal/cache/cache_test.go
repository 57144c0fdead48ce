package cache

import (
	"path/filepath"
	"testing"

	"github.com/refsmith/refcheck/internal/library"
)

const indexBib = `@article{smith2020,
  author = {Jane Smith},
  title = {Deep Learning for {NLP}},
  year = {2020}
}

@book{doe2019,
  author = {John Doe},
  title = {Graph Algorithms},
  year = {2019}
}
`

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache", "library.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func loadedLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, _, err := library.Parse(indexBib)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return lib
}

func TestSync_RebuildsOnHashChange(t *testing.T) {
	c := openTestCache(t)
	lib := loadedLibrary(t)
	hash := Hash([]byte(indexBib))

	rebuilt, err := c.Sync(lib, hash)
	if err != nil {
		t.Fatalf("Sync() error: %v", err)
	}
	if !rebuilt {
		t.Error("first Sync() should rebuild")
	}

	rebuilt, err = c.Sync(lib, hash)
	if err != nil {
		t.Fatalf("second Sync() error: %v", err)
	}
	if rebuilt {
		t.Error("Sync() with an unchanged hash should not rebuild")
	}

	rebuilt, err = c.Sync(lib, Hash([]byte(indexBib+"\n% edited")))
	if err != nil {
		t.Fatalf("third Sync() error: %v", err)
	}
	if !rebuilt {
		t.Error("Sync() with a changed hash should rebuild")
	}
}

func TestStoredHash_EmptyDatabase(t *testing.T) {
	c := openTestCache(t)

	hash, err := c.StoredHash()
	if err != nil {
		t.Fatalf("StoredHash() error: %v", err)
	}
	if hash != "" {
		t.Errorf("StoredHash() on a fresh cache = %q, want empty", hash)
	}
}

func TestGet(t *testing.T) {
	c := openTestCache(t)
	lib := loadedLibrary(t)
	if err := c.Rebuild(lib, Hash([]byte(indexBib))); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	row, found, err := c.Get("smith2020")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !found {
		t.Fatal("Get(smith2020) should find the entry")
	}
	if row.EntryType != "article" {
		t.Errorf("EntryType = %q, want article", row.EntryType)
	}
	if row.TitleNorm != "deep learning for nlp" {
		t.Errorf("TitleNorm = %q, want %q", row.TitleNorm, "deep learning for nlp")
	}
	if row.Author != "jane smith" {
		t.Errorf("Author = %q, want %q", row.Author, "jane smith")
	}
	if row.Year != "2020" {
		t.Errorf("Year = %q, want 2020", row.Year)
	}

	_, found, err = c.Get("missing")
	if err != nil {
		t.Fatalf("Get(missing) error: %v", err)
	}
	if found {
		t.Error("Get(missing) should report not found")
	}
}

func TestSearch(t *testing.T) {
	c := openTestCache(t)
	lib := loadedLibrary(t)
	if err := c.Rebuild(lib, Hash([]byte(indexBib))); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"title word", "learning", []string{"smith2020"}},
		{"braces in query stripped", "{NLP}", []string{"smith2020"}},
		{"key substring", "doe", []string{"doe2019"}},
		{"no match", "quantum", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := c.Search(tt.query)
			if err != nil {
				t.Fatalf("Search(%q) error: %v", tt.query, err)
			}
			var keys []string
			for _, r := range rows {
				keys = append(keys, r.Key)
			}
			if len(keys) != len(tt.want) {
				t.Fatalf("Search(%q) keys = %v, want %v", tt.query, keys, tt.want)
			}
			for i := range keys {
				if keys[i] != tt.want[i] {
					t.Errorf("Search(%q) keys = %v, want %v", tt.query, keys, tt.want)
				}
			}
		})
	}
}

func TestRebuild_ReplacesStaleEntries(t *testing.T) {
	c := openTestCache(t)
	lib := loadedLibrary(t)
	if err := c.Rebuild(lib, "h1"); err != nil {
		t.Fatalf("Rebuild() error: %v", err)
	}

	lib.Delete("doe2019")
	if err := c.Rebuild(lib, "h2"); err != nil {
		t.Fatalf("second Rebuild() error: %v", err)
	}

	_, found, err := c.Get("doe2019")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if found {
		t.Error("deleted entry should be gone after rebuild")
	}

	hash, err := c.StoredHash()
	if err != nil {
		t.Fatalf("StoredHash() error: %v", err)
	}
	if hash != "h2" {
		t.Errorf("StoredHash() = %q, want h2", hash)
	}
}
