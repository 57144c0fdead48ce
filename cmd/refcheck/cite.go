package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/cite"
	"github.com/refsmith/refcheck/internal/document"
)

func init() {
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite [document]",
	Short: "Reconcile citations in a document against the bibliography",
	Long: `Reconcile citations in a document against the bibliography.

Reports records never cited (zombies), cited keys with no record
(ghosts), and keys cited more than once. The document defaults to the
one configured in .refcheck/config.yaml; PDFs are text-extracted first.

Examples:
  refcheck cite
  refcheck cite paper.tex
  refcheck cite draft.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCite,
}

func runCite(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	lib, _ := mustLoadLibrary(resolveBibPath(repoRoot, cfg))

	docPath := cfg.Tex
	if len(args) > 0 {
		docPath = args[0]
	}
	if docPath == "" {
		exitWithError(ExitConfigError, "no document given and none configured (set tex in config.yaml)")
	}

	text, err := document.LoadText(docPath)
	if err != nil {
		exitWithError(ExitError, "loading document: %v", err)
	}

	result, err := cite.Analyze(lib, text)
	if err != nil {
		exitWithError(ExitDataError, "analyzing citations: %v", err)
	}

	if humanOutput {
		if len(result.Unreferenced) == 0 && len(result.Missing) == 0 && len(result.Duplicates) == 0 {
			fmt.Println("Citations and bibliography are in sync")
			return nil
		}
		if len(result.Unreferenced) > 0 {
			fmt.Printf("Never cited (%d):\n", len(result.Unreferenced))
			for _, k := range result.Unreferenced {
				fmt.Printf("  %s\n", k)
			}
			fmt.Println()
		}
		if len(result.Missing) > 0 {
			fmt.Printf("Cited but missing from bibliography (%d):\n", len(result.Missing))
			for _, k := range result.Missing {
				fmt.Printf("  %s\n", k)
			}
			fmt.Println()
		}
		if len(result.Duplicates) > 0 {
			fmt.Printf("Cited more than once (%d):\n", len(result.Duplicates))
			for k, n := range result.Duplicates {
				fmt.Printf("  %s (%d times)\n", k, n)
			}
		}
	} else {
		outputJSON(result)
	}

	return nil
}
