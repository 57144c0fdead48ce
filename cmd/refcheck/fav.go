package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refsmith/refcheck/internal/config"
	"github.com/refsmith/refcheck/internal/favorites"
)

func init() {
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRmCmd)
	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favExportCmd)
	rootCmd.AddCommand(favCmd)
}

var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favorite records",
	Long: `Manage favorite records.

Favorites store the full record text under .refcheck/favorites.json, so
a starred record survives even if it is later removed from the
bibliography.`,
}

var favAddCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Star a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavAdd,
}

var favRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Unstar a record",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavRm,
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List starred records",
	RunE:  runFavList,
}

var favExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write starred records as a standalone BibTeX file to stdout",
	RunE:  runFavExport,
}

func mustLoadFavorites(repoRoot string) *favorites.List {
	favs, err := favorites.Load(config.FavoritesPath(repoRoot))
	if err != nil {
		exitWithError(ExitError, "loading favorites: %v", err)
	}
	return favs
}

func runFavAdd(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	cfg := mustLoadConfig(repoRoot)
	lib, _ := mustLoadLibrary(resolveBibPath(repoRoot, cfg))

	key := args[0]
	block, ok := lib.Verbatim[key]
	if !ok {
		exitWithError(ExitError, "no record with key %q", key)
	}

	favs := mustLoadFavorites(repoRoot)
	added := favs.Add(block)
	if added {
		if err := favs.Save(); err != nil {
			exitWithError(ExitError, "saving favorites: %v", err)
		}
	}

	if humanOutput {
		if added {
			fmt.Printf("Starred %s\n", key)
		} else {
			fmt.Printf("%s is already starred\n", key)
		}
	} else {
		status := "starred"
		if !added {
			status = "already_starred"
		}
		outputJSON(StatusResponse{Status: status, Key: key})
	}

	return nil
}

func runFavRm(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()

	key := args[0]
	favs := mustLoadFavorites(repoRoot)
	if !favs.RemoveKey(key) {
		exitWithError(ExitError, "no favorite with key %q", key)
	}
	if err := favs.Save(); err != nil {
		exitWithError(ExitError, "saving favorites: %v", err)
	}

	if humanOutput {
		fmt.Printf("Unstarred %s\n", key)
	} else {
		outputJSON(StatusResponse{Status: "unstarred", Key: key})
	}

	return nil
}

func runFavList(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	favs := mustLoadFavorites(repoRoot)

	keys := favs.Keys()
	if keys == nil {
		keys = []string{}
	}

	if humanOutput {
		if len(keys) == 0 {
			fmt.Println("No starred records")
		} else {
			fmt.Printf("%d starred records:\n\n", len(keys))
			for _, k := range keys {
				fmt.Printf("  %s\n", k)
			}
		}
	} else {
		outputJSON(keys)
	}

	return nil
}

func runFavExport(cmd *cobra.Command, args []string) error {
	repoRoot := mustFindRepository()
	favs := mustLoadFavorites(repoRoot)

	fmt.Print(favs.Export())
	return nil
}
