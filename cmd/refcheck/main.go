// Package main provides the refcheck CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/cache"
	"github.com/refsmith/refcheck/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// bibOverride points commands at a bibliography outside the repository config.
var bibOverride string

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refcheck",
	Short: "BibTeX bibliography checker and citation reconciler",
	Long: `refcheck keeps a BibTeX bibliography and the documents citing it in sync.

Core features:
  - Parse and validate BibTeX files, preserving the original record text
  - Detect likely duplicate records by fuzzy title and metadata comparison
  - Reconcile \cite commands in LaTeX sources against the bibliography
  - Extract DOIs from PDFs and match them to existing records

All commands output JSON by default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&bibOverride, "bib", "", "Bibliography file to use instead of the configured one")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a repository.
// Checks the REFCHECK_ROOT environment variable first, then the working directory.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("REFCHECK_ROOT"); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindRepository finds and validates the repository, exits on error.
// Returns the repository root path.
func mustFindRepository() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	repoRoot, err := config.FindRepository(start)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n\nRun 'refcheck init' to create one.", err)
	}
	return repoRoot
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenCache opens the SQLite index, exits on error.
// The caller is responsible for calling Close() on the returned cache.
func mustOpenCache(repoRoot string) *cache.Cache {
	c, err := cache.Open(config.DBPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "opening index: %v", err)
	}
	return c
}
