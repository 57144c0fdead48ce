package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/bibtex"
	"github.com/refsmith/refcheck/internal/library"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [file.bib]",
	Short: "Verify the bibliography parses cleanly",
	Long: `Verify the bibliography parses cleanly.

Reports the number of parsable records and any blocks that had to be
skipped. A file with no parsable records at all exits with code 3.
Without an argument the configured bibliography is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status  string   `json:"status"`
	Path    string   `json:"path"`
	Records int      `json:"records"`
	Skipped []string `json:"skipped"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	path := resolveBibPath(repoRoot, cfg)
	if len(args) > 0 {
		path = args[0]
	}

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

	if warnings == nil {
		warnings = []string{}
	}
	status := "ok"
	if len(warnings) > 0 {
		status = "issues"
	}

	if humanOutput {
		if len(warnings) == 0 {
			fmt.Printf("Bibliography check: OK\n\n%d records parsed from %s\n", lib.Len(), path)
		} else {
			fmt.Printf("Bibliography check: %d blocks skipped\n\n", len(warnings))
			for _, w := range warnings {
				fmt.Printf("  [WARN] %s\n", w)
			}
			fmt.Printf("\n%d records parsed from %s\n", lib.Len(), path)
		}
	} else {
		outputJSON(CheckResult{
			Status:  status,
			Path:    path,
			Records: lib.Len(),
			Skipped: warnings,
		})
	}

	return nil
}
