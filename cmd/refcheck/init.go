package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/config"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new refcheck repository",
	Long: `Initialize a new refcheck repository in the current directory.

Creates:
  .refcheck/
  ├── config.yaml     # Default config
  └── cache/          # Search index (gitignored)

An empty references.bib is created unless one already exists.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	cfg, err := config.Init(root)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	// Seed an empty bibliography so commands work out of the box
	bibPath := cfg.BibPath(root)
	if _, err := os.Stat(bibPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(bibPath, nil, 0644); err != nil {
			exitWithError(ExitError, "creating %s: %v", cfg.Bib, err)
		}
	}

	if humanOutput {
		fmt.Printf("Initialized refcheck repository in %s\n", root)
	} else {
		outputJSON(StatusResponse{
			Status: "initialized",
			Path:   root,
		})
	}

	return nil
}
