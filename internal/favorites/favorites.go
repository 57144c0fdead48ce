// Package favorites keeps a per-repository list of starred records,
// stored as raw record text so a favorite survives edits to the main
// bibliography.
package favorites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/refsmith/refcheck/internal/bibtex"
)

// List holds favorite records in the order they were added.
type List struct {
	path   string
	Blocks []string `json:"blocks"`
}

// Load reads the favorites file at path. A missing file yields an empty
// list that will be created on the first Save.
func Load(path string) (*List, error) {
	l := &List{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading favorites: %w", err)
	}

	if err := json.Unmarshal(data, l); err != nil {
		return nil, fmt.Errorf("parsing favorites: %w", err)
	}
	return l, nil
}

// Save writes the list back to its file.
func (l *List) Save() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating favorites directory: %w", err)
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	return os.WriteFile(l.path, append(data, '\n'), 0644)
}

// Add appends a record block. Returns false when an identical block is
// already present.
func (l *List) Add(block string) bool {
	block = strings.TrimSpace(block)
	for _, b := range l.Blocks {
		if b == block {
			return false
		}
	}
	l.Blocks = append(l.Blocks, block)
	return true
}

// RemoveKey drops every block whose record key matches. Returns whether
// anything was removed.
func (l *List) RemoveKey(key string) bool {
	kept := l.Blocks[:0]
	removed := false
	for _, b := range l.Blocks {
		if blockKey(b) == key {
			removed = true
			continue
		}
		kept = append(kept, b)
	}
	l.Blocks = kept
	return removed
}

// Keys returns the record keys of all favorites, in list order. Blocks
// that no longer parse contribute nothing.
func (l *List) Keys() []string {
	var keys []string
	for _, b := range l.Blocks {
		if k := blockKey(b); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Export renders the favorites as a standalone bibliography.
func (l *List) Export() string {
	if len(l.Blocks) == 0 {
		return ""
	}
	return strings.Join(l.Blocks, "\n\n") + "\n"
}

func blockKey(block string) string {
	entries, err := bibtex.ParseBlock(block)
	if err != nil || len(entries) == 0 {
		return ""
	}
	return entries[0].Key
}
