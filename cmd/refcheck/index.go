package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/cache"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the search index from the bibliography",
	Long: `Rebuild the search index from the bibliography.

The index is derived data living under .refcheck/cache/ and is refreshed
automatically by commands that need it. This forces a full rebuild.`,
	RunE: runIndex,
}

// IndexResult is the response for the index command.
type IndexResult struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

func runIndex(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	lib, raw := mustLoadLibrary(resolveBibPath(repoRoot, cfg))

	c := mustOpenCache(repoRoot)
	defer c.Close()

	if err := c.Rebuild(lib, cache.Hash(raw)); err != nil {
		exitWithError(ExitError, "rebuilding index: %v", err)
	}

	if humanOutput {
		fmt.Printf("Indexed %d records\n", lib.Len())
	} else {
		outputJSON(IndexResult{Status: "rebuilt", Records: lib.Len()})
	}

	return nil
}
