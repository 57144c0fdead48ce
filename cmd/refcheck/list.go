package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listSearch string

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Filter by key or title substring")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bibliography records",
	Long: `List bibliography records in file order.

Examples:
  refcheck list
  refcheck list --search transformer`,
	RunE: runList,
}

// ListItem is one record in list output.
type ListItem struct {
	Key    string `json:"key"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	Year   string `json:"year,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	lib, raw := mustLoadLibrary(resolveBibPath(repoRoot, cfg))
	syncCache(repoRoot, lib, raw)

	var items []ListItem
	if listSearch != "" {
		c := mustOpenCache(repoRoot)
		defer c.Close()

		rows, err := c.Search(listSearch)
		if err != nil {
			exitWithError(ExitError, "searching index: %v", err)
		}
		for _, r := range rows {
			items = append(items, ListItem{
				Key:    r.Key,
				Type:   r.EntryType,
				Title:  r.Title,
				Author: r.Author,
				Year:   r.Year,
			})
		}
	} else {
		for _, key := range lib.Order {
			e, _ := lib.Get(key)
			items = append(items, ListItem{
				Key:    key,
				Type:   e.Type,
				Title:  e.Field("title"),
				Author: e.AuthorString(),
				Year:   e.Field("year"),
			})
		}
	}

	if humanOutput {
		if len(items) == 0 {
			fmt.Println("No records found")
		} else {
			fmt.Printf("%d records:\n\n", len(items))
			for _, it := range items {
				fmt.Printf("  %-20s %s\n", it.Key, truncateString(it.Title, ListTitleMaxLen))
			}
		}
	} else {
		if items == nil {
			items = []ListItem{}
		}
		outputJSON(items)
	}

	return nil
}
