package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/document"
)

func init() {
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <paper.pdf>",
	Short: "Extract the DOI from a PDF and match it to the bibliography",
	Long: `Extract the DOI from a PDF and match it to the bibliography.

The first pages of the PDF are searched for a DOI. When one is found it
is compared against the doi fields of existing records, so you can tell
whether a downloaded paper is already in the library.

Examples:
  refcheck scan downloads/paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

// ScanResult is the response for the scan command.
type ScanResult struct {
	Path        string `json:"path"`
	DOI         string `json:"doi,omitempty"`
	ExistingKey string `json:"existing_key,omitempty"`
	Status      string `json:"status"`
}

func runScan(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	lib, _ := mustLoadLibrary(resolveBibPath(repoRoot, cfg))

	path := args[0]
	doi, err := document.ExtractDOI(path)
	if err != nil {
		exitWithError(ExitError, "scanning %s: %v", path, err)
	}

	result := ScanResult{Path: path, DOI: doi, Status: "no_doi"}
	if doi != "" {
		result.Status = "new"
		normalized := document.NormalizeDOI(doi)
		for _, key := range lib.Order {
			e, _ := lib.Get(key)
			if d := e.Field("doi"); d != "" && document.NormalizeDOI(d) == normalized {
				result.ExistingKey = key
				result.Status = "known"
				break
			}
		}
	}

	if humanOutput {
		switch result.Status {
		case "no_doi":
			fmt.Printf("No DOI found in %s\n", path)
		case "known":
			fmt.Printf("DOI %s already in bibliography as %s\n", result.DOI, result.ExistingKey)
		case "new":
			fmt.Printf("DOI %s not in bibliography\n", result.DOI)
		}
	} else {
		outputJSON(result)
	}

	return nil
}
