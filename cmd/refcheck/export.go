package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the bibliography as clean BibTeX",
	Long: `Write the bibliography as clean BibTeX.

Records keep their original text; unparsable blocks are dropped. Without
--output the result goes to stdout regardless of the --human flag.

Examples:
  refcheck export > clean.bib
  refcheck export -o clean.bib`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	path := resolveBibPath(repoRoot, cfg)
	lib, _ := mustLoadLibrary(path)

	rendered := lib.Render()

	if exportOutput == "" {
		fmt.Print(rendered)
		return nil
	}

	// Exporting over the source file counts as a save and gets a backup
	backup := cfg.BackupOnSave && exportOutput == path
	if backup {
		prev, err := os.ReadFile(path)
		if err == nil {
			if err := os.WriteFile(path+".backup", prev, 0644); err != nil {
				exitWithError(ExitError, "writing backup: %v", err)
			}
		}
	}

	if err := os.WriteFile(exportOutput, []byte(rendered), 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", exportOutput, err)
	}

	if humanOutput {
		fmt.Printf("Exported %d records to %s\n", lib.Len(), exportOutput)
	} else {
		outputJSON(StatusResponse{Status: "exported", Path: exportOutput})
	}

	return nil
}
