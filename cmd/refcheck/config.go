package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  refcheck config                        # Show all config
  refcheck config bib                    # Get specific value
  refcheck config bib refs/main.bib      # Set value
  refcheck config title-threshold 0.95   # Set duplicate cutoff

Keys:
  bib              Bibliography path, relative to the repository root
  tex              Default document for citation analysis
  title-threshold  Title similarity cutoff for duplicate detection (0, 1]
  backup-on-save   Whether commands that rewrite the bib keep a .backup`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

// ConfigResponse is the response for config get without arguments.
type ConfigResponse struct {
	Bib            string  `json:"bib"`
	Tex            string  `json:"tex,omitempty"`
	TitleThreshold float64 `json:"title_threshold"`
	BackupOnSave   bool    `json:"backup_on_save"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("bib:             %s\n", cfg.Bib)
			fmt.Printf("tex:             %s\n", cfg.Tex)
			fmt.Printf("title-threshold: %g\n", cfg.TitleThreshold)
			fmt.Printf("backup-on-save:  %t\n", cfg.BackupOnSave)
		} else {
			outputJSON(ConfigResponse{
				Bib:            cfg.Bib,
				Tex:            cfg.Tex,
				TitleThreshold: cfg.TitleThreshold,
				BackupOnSave:   cfg.BackupOnSave,
			})
		}
		return nil
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		switch key {
		case "bib":
			printConfigValue("bib", cfg.Bib)
		case "tex":
			printConfigValue("tex", cfg.Tex)
		case "title-threshold":
			printConfigValue("title_threshold", strconv.FormatFloat(cfg.TitleThreshold, 'g', -1, 64))
		case "backup-on-save":
			printConfigValue("backup_on_save", strconv.FormatBool(cfg.BackupOnSave))
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch key {
	case "bib":
		if value == "" {
			exitWithError(ExitConfigError, "bib cannot be empty")
		}
		cfg.Bib = value

	case "tex":
		cfg.Tex = value

	case "title-threshold":
		threshold, err := strconv.ParseFloat(value, 64)
		if err != nil || threshold <= 0 || threshold > 1 {
			exitWithError(ExitConfigError, "title-threshold must be a number in (0, 1], got %q", value)
		}
		cfg.TitleThreshold = threshold

	case "backup-on-save":
		backup, err := strconv.ParseBool(value)
		if err != nil {
			exitWithError(ExitConfigError, "backup-on-save must be true or false, got %q", value)
		}
		cfg.BackupOnSave = backup

	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(repoRoot); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    key,
			Value:  value,
		})
	}

	return nil
}

func printConfigValue(jsonKey, value string) {
	if humanOutput {
		fmt.Println(value)
	} else {
		outputJSON(map[string]string{jsonKey: value})
	}
}

// normalizeKey converts key formats (title_threshold, title-threshold) to one form.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
