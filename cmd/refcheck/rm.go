package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rmCmd)
}

var rmCmd = &cobra.Command{
	Use:   "rm <key>...",
	Short: "Remove records from the bibliography",
	Long: `Remove records from the bibliography by key.

Examples:
  refcheck rm smith2020
  refcheck rm smith2020 doe2019`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

// RmResult is the response for the rm command.
type RmResult struct {
	Status  string   `json:"status"`
	Removed []string `json:"removed"`
	Total   int      `json:"total"`
}

func runRm(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	path := resolveBibPath(repoRoot, cfg)
	lib, _ := mustLoadLibrary(path)

	// Validate all keys before touching the file
	for _, key := range args {
		if !lib.Has(key) {
			exitWithError(ExitError, "no record with key %q", key)
		}
	}

	for _, key := range args {
		lib.Delete(key)
	}

	if err := saveBibFile(path, lib, cfg.BackupOnSave); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	syncCache(repoRoot, lib, []byte(lib.Render()))

	if humanOutput {
		fmt.Printf("Removed %d records (%d remain)\n", len(args), lib.Len())
	} else {
		outputJSON(RmResult{
			Status:  "removed",
			Removed: args,
			Total:   lib.Len(),
		})
	}

	return nil
}
