package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/refsmith/refcheck/internal/bibtex"
	"github.com/refsmith/refcheck/internal/cache"
	"github.com/refsmith/refcheck/internal/config"
	"github.com/refsmith/refcheck/internal/library"
)

// resolveBibPath returns the bibliography path a command should operate on.
// The --bib flag wins over the repository config.
func resolveBibPath(repoRoot string, cfg *config.Config) string {
	if bibOverride != "" {
		return bibOverride
	}
	return cfg.BibPath(repoRoot)
}

// mustLoadLibrary reads and parses the bibliography, exits on error.
// Per-record parse warnings go to stderr; a bibliography with no parsable
// records at all is a data error. Returns the library and the raw file
// content, which the index uses for staleness hashing.
func mustLoadLibrary(path string) (*library.Library, []byte) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			exitWithError(ExitConfigError, "bibliography not found: %s", path)
		}
		exitWithError(ExitError, "reading bibliography: %v", err)
	}

	lib, warnings, err := library.Parse(string(data))
	if err != nil {
		var perr *bibtex.ParseError
		if errors.As(err, &perr) {
			exitWithError(ExitDataError, "parsing %s: %v", path, err)
		}
		exitWithError(ExitError, "parsing %s: %v", path, err)
	}
	printWarnings(warnings)
	return lib, data
}

// saveBibFile writes the library back to path. When backup is set and the
// file already exists, the previous content is kept in path + ".backup".
func saveBibFile(path string, lib *library.Library, backup bool) error {
	if backup {
		prev, err := os.ReadFile(path)
		if err == nil {
			if err := os.WriteFile(path+".backup", prev, 0644); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("reading previous bibliography: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(lib.Render()), 0644); err != nil {
		return fmt.Errorf("writing bibliography: %w", err)
	}
	return nil
}

// readInput reads a file argument, with "-" meaning stdin.
func readInput(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", arg, err)
	}
	return string(data), nil
}

// syncCache refreshes the SQLite index from the bibliography content.
// Index failures never block a command; they degrade to a warning.
func syncCache(repoRoot string, lib *library.Library, raw []byte) {
	c, err := cache.Open(config.DBPath(repoRoot))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: opening index: %v\n", err)
		return
	}
	defer c.Close()

	if _, err := c.Sync(lib, cache.Hash(raw)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: updating index: %v\n", err)
	}
}
