// Package cache maintains a derived SQLite index of a parsed library for
// fast key and title lookups. The bibliography file stays authoritative;
// the index rebuilds whenever the stored content hash goes stale.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/refsmith/refcheck/internal/bibtex"
	"github.com/refsmith/refcheck/internal/library"
)

const schema = `
CREATE TABLE IF NOT EXISTS entries (
  key TEXT PRIMARY KEY,
  entry_type TEXT,
  title TEXT,
  title_norm TEXT,
  author TEXT,
  year TEXT,
  position INTEGER
);
CREATE INDEX IF NOT EXISTS idx_entries_title_norm ON entries(title_norm);
CREATE TABLE IF NOT EXISTS _meta (
  key TEXT PRIMARY KEY,
  value TEXT
);
`

// Row is one indexed entry.
type Row struct {
	Key       string `json:"key"`
	EntryType string `json:"entry_type"`
	Title     string `json:"title"`
	TitleNorm string `json:"title_norm"`
	Author    string `json:"author"`
	Year      string `json:"year"`
}

// Cache wraps the index database.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Hash returns the content hash used for staleness checks.
func Hash(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

// StoredHash retrieves the hash the current index was built from.
func (c *Cache) StoredHash() (string, error) {
	var hash sql.NullString
	err := c.db.QueryRow("SELECT value FROM _meta WHERE key = 'bib_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

// Sync rebuilds the index from lib when hash differs from the stored one.
// Returns whether a rebuild happened.
func (c *Cache) Sync(lib *library.Library, hash string) (bool, error) {
	stored, err := c.StoredHash()
	if err != nil {
		return false, err
	}
	if stored == hash {
		return false, nil
	}
	if err := c.Rebuild(lib, hash); err != nil {
		return false, err
	}
	return true, nil
}

// Rebuild replaces the whole index with lib's entries.
func (c *Cache) Rebuild(lib *library.Library, hash string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO entries
		(key, entry_type, title, title_norm, author, year, position)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for pos, key := range lib.Order {
		e, _ := lib.Get(key)
		title := e.Field("title")
		_, err := stmt.Exec(key, e.Type, title, bibtex.NormalizeTitle(title),
			strings.ToLower(e.AuthorString()), e.Field("year"), pos)
		if err != nil {
			return fmt.Errorf("indexing %s: %w", key, err)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('bib_hash', ?)`, hash); err != nil {
		return fmt.Errorf("storing hash: %w", err)
	}

	return tx.Commit()
}

// Get returns the indexed row for a key.
func (c *Cache) Get(key string) (Row, bool, error) {
	var r Row
	err := c.db.QueryRow(`SELECT key, entry_type, title, title_norm, author, year
		FROM entries WHERE key = ?`, key).
		Scan(&r.Key, &r.EntryType, &r.Title, &r.TitleNorm, &r.Author, &r.Year)
	if err == sql.ErrNoRows {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, err
	}
	return r, true, nil
}

// Search returns entries whose key or normalized title contains q, in file
// order. The query is normalized the same way titles are.
func (c *Cache) Search(q string) ([]Row, error) {
	pattern := "%" + bibtex.NormalizeTitle(q) + "%"
	keyPattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"

	rows, err := c.db.Query(`SELECT key, entry_type, title, title_norm, author, year
		FROM entries
		WHERE title_norm LIKE ? OR lower(key) LIKE ?
		ORDER BY position`, pattern, keyPattern)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	defer rows.Close()

	var results []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Key, &r.EntryType, &r.Title, &r.TitleNorm, &r.Author, &r.Year); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
