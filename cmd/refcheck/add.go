package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/bibtex"
	"github.com/refsmith/refcheck/internal/library"
)

var (
	addBegin bool
	addAfter string
)

func init() {
	addCmd.Flags().BoolVar(&addBegin, "begin", false, "Insert at the beginning instead of the end")
	addCmd.Flags().StringVar(&addAfter, "after", "", "Insert after the record with this key")
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <records.bib>",
	Short: "Add records to the bibliography",
	Long: `Add records to the bibliography.

New records come from a BibTeX file, or from stdin when the argument is
"-". Records keep their original text verbatim. Keys that already exist
in the bibliography are rejected before anything is written.

Examples:
  refcheck add new-refs.bib
  pbpaste | refcheck add -
  refcheck add new-refs.bib --after smith2020`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// AddResult is the response for the add command.
type AddResult struct {
	Status string   `json:"status"`
	Added  []string `json:"added"`
	Total  int      `json:"total"`
}

func runAdd(cmd *cobra.Command, args []string) error {
	if addBegin && addAfter != "" {
		exitWithError(ExitError, "--begin and --after are mutually exclusive")
	}

	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	path := resolveBibPath(repoRoot, cfg)
	lib, _ := mustLoadLibrary(path)

	input, err := readInput(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	incoming, warnings, err := library.Parse(input)
	if err != nil {
		exitWithError(ExitDataError, "parsing new records: %v", err)
	}
	printWarnings(warnings)

	pos := lib.Len()
	if addBegin {
		pos = 0
	} else if addAfter != "" {
		pos, err = lib.PositionAfter(addAfter)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	var entries []bibtex.Entry
	verbatim := make(map[string]string, incoming.Len())
	for _, key := range incoming.Order {
		e, _ := incoming.Get(key)
		entries = append(entries, e)
		verbatim[key] = incoming.Verbatim[key]
	}

	if err := lib.Insert(pos, entries, verbatim); err != nil {
		exitWithError(ExitDataError, "adding records: %v", err)
	}

	if err := saveBibFile(path, lib, cfg.BackupOnSave); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	syncCache(repoRoot, lib, []byte(lib.Render()))

	if humanOutput {
		fmt.Printf("Added %d records (%d total)\n", len(entries), lib.Len())
	} else {
		outputJSON(AddResult{
			Status: "added",
			Added:  incoming.Keys(),
			Total:  lib.Len(),
		})
	}

	return nil
}
