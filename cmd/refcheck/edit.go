package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var editSet []string

func init() {
	editCmd.Flags().StringArrayVar(&editSet, "set", nil, "Field to update, as field=value (repeatable)")
	editCmd.MarkFlagRequired("set")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <key>",
	Short: "Update fields of a record",
	Long: `Update fields of a record.

The record is regenerated from its parsed form, so hand formatting of
the original text is not preserved for the edited record.

Examples:
  refcheck edit smith2020 --set year=2021
  refcheck edit smith2020 --set "title=A Better Title" --set volume=12`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

// EditResult is the response for the edit command.
type EditResult struct {
	Status string            `json:"status"`
	Key    string            `json:"key"`
	Fields map[string]string `json:"fields"`
}

func runEdit(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	path := resolveBibPath(repoRoot, cfg)
	lib, _ := mustLoadLibrary(path)

	key := args[0]
	e, ok := lib.Get(key)
	if !ok {
		exitWithError(ExitError, "no record with key %q", key)
	}

	updated := make(map[string]string, len(editSet))
	for _, spec := range editSet {
		name, value, found := strings.Cut(spec, "=")
		name = strings.TrimSpace(strings.ToLower(name))
		if !found || name == "" {
			exitWithError(ExitError, "invalid --set %q, want field=value", spec)
		}
		e.SetField(name, value)
		updated[name] = value
	}

	lib.Update(e)

	if err := saveBibFile(path, lib, cfg.BackupOnSave); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	syncCache(repoRoot, lib, []byte(lib.Render()))

	if humanOutput {
		fmt.Printf("Updated %s:\n", key)
		for name, value := range updated {
			fmt.Printf("  %s = %s\n", name, value)
		}
	} else {
		outputJSON(EditResult{
			Status: "updated",
			Key:    key,
			Fields: updated,
		})
	}

	return nil
}
