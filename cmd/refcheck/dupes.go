package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/dupe"
	"github.com/refsmith/refcheck/internal/library"
)

var dupesThreshold float64

func init() {
	dupesCmd.Flags().Float64Var(&dupesThreshold, "threshold", 0, "Title similarity cutoff (0 = use config)")
	rootCmd.AddCommand(dupesCmd)
}

var dupesCmd = &cobra.Command{
	Use:   "dupes <candidates.bib>",
	Short: "Check candidate records against the bibliography for duplicates",
	Long: `Check candidate records against the bibliography for duplicates.

Candidates come from a BibTeX file, or from stdin when the argument is "-".
A candidate matches an existing record when the normalized titles are
similar above the threshold and the year or author agree as well.

Examples:
  refcheck dupes new-refs.bib
  pbpaste | refcheck dupes -
  refcheck dupes new-refs.bib --threshold 0.95`,
	Args: cobra.ExactArgs(1),
	RunE: runDupes,
}

// DupesResult is the response for the dupes command.
type DupesResult struct {
	Candidates int          `json:"candidates"`
	Matches    []dupe.Match `json:"matches"`
}

func runDupes(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	lib, _ := mustLoadLibrary(resolveBibPath(repoRoot, cfg))

	candidates, err := readInput(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	threshold := dupesThreshold
	if threshold == 0 {
		threshold = cfg.TitleThreshold
	}

	matches, warnings, err := dupe.Find(candidates, lib, threshold)
	if err != nil {
		exitWithError(ExitDataError, "checking candidates: %v", err)
	}
	printWarnings(warnings)

	candCount := countCandidates(candidates)

	if humanOutput {
		if len(matches) == 0 {
			fmt.Printf("No duplicates found among %d candidates\n", candCount)
		} else {
			fmt.Printf("%d likely duplicates:\n\n", len(matches))
			for _, m := range matches {
				fmt.Printf("  %s looks like existing %s\n", m.CandidateKey, m.ExistingKey)
				fmt.Printf("    %s (%s)\n\n", truncateString(m.NormalizedTitle, SearchTitleMaxLen), m.Reason)
			}
		}
	} else {
		if matches == nil {
			matches = []dupe.Match{}
		}
		outputJSON(DupesResult{
			Candidates: candCount,
			Matches:    matches,
		})
	}

	return nil
}

// countCandidates parses the candidate text for the summary line only.
func countCandidates(text string) int {
	cands, _, err := library.Parse(text)
	if err != nil {
		return 0
	}
	return cands.Len()
}
