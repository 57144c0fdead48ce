// Package config handles repository configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/refsmith/refcheck/internal/dupe"
)

// Config represents repository configuration stored in .refcheck/config.yaml.
type Config struct {
	Bib            string  `yaml:"bib"`             // Path to the bibliography, relative to the root
	Tex            string  `yaml:"tex,omitempty"`   // Default document for citation analysis
	TitleThreshold float64 `yaml:"title_threshold"` // Similarity cutoff for duplicate detection
	BackupOnSave   bool    `yaml:"backup_on_save"`  // Write a .backup before overwriting the bib
}

const (
	RefcheckDir   = ".refcheck"
	ConfigFile    = "config.yaml"
	FavoritesFile = "favorites.json"
	CacheDir      = "cache"
	DBFile        = "library.db"
)

// Default returns a configuration with the standard defaults applied.
func Default() *Config {
	return &Config{
		Bib:            "references.bib",
		TitleThreshold: dupe.DefaultTitleThreshold,
		BackupOnSave:   true,
	}
}

// RefcheckPath returns the path to the .refcheck directory from a root path.
func RefcheckPath(root string) string {
	return filepath.Join(root, RefcheckDir)
}

// ConfigPath returns the path to config.yaml from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, RefcheckDir, ConfigFile)
}

// FavoritesPath returns the path to favorites.json from a root path.
func FavoritesPath(root string) string {
	return filepath.Join(root, RefcheckDir, FavoritesFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, RefcheckDir, CacheDir)
}

// DBPath returns the path to library.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, RefcheckDir, CacheDir, DBFile)
}

// BibPath resolves the configured bibliography path against the root.
// Absolute paths pass through unchanged.
func (c *Config) BibPath(root string) string {
	if filepath.IsAbs(c.Bib) {
		return c.Bib
	}
	return filepath.Join(root, c.Bib)
}

// IsRepository checks if the given path contains a refcheck repository.
func IsRepository(root string) bool {
	info, err := os.Stat(RefcheckPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a refcheck repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a refcheck repository (no .refcheck directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root. Fields
// absent from the file keep their defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.TitleThreshold <= 0 || cfg.TitleThreshold > 1 {
		return nil, fmt.Errorf("title_threshold must be in (0, 1], got %v", cfg.TitleThreshold)
	}

	return cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Init creates the .refcheck directory tree and a default config at root.
// It fails if the repository already exists.
func Init(root string) (*Config, error) {
	if IsRepository(root) {
		return nil, fmt.Errorf("already a refcheck repository: %s", root)
	}

	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return nil, fmt.Errorf("creating repository: %w", err)
	}

	cfg := Default()
	if err := cfg.Save(root); err != nil {
		return nil, err
	}
	return cfg, nil
}
