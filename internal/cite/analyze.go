package cite

import (
	"sort"

	"github.com/refsmith/refcheck/internal/library"
)

// Result reconciles a library's key set against the keys a document cites.
// All three views are derived on demand and never persisted.
type Result struct {
	// Unreferenced lists library keys the document never cites ("zombie"
	// entries), sorted ascending.
	Unreferenced []string `json:"unreferenced"`
	// Missing lists cited keys absent from the library ("ghost" entries),
	// sorted ascending.
	Missing []string `json:"missing"`
	// Duplicates carries the extractor's multiple-citation counts through
	// verbatim.
	Duplicates map[string]int `json:"duplicates"`
}

// Analyze cross-references lib against document text. The document is
// scanned exactly once per call and lib is never mutated. Fails with
// library.ErrNotLoaded when lib is empty.
func Analyze(lib *library.Library, document string) (Result, error) {
	if lib == nil || lib.Len() == 0 {
		return Result{}, library.ErrNotLoaded
	}

	report := Extract(document)

	result := Result{
		Unreferenced: []string{},
		Missing:      []string{},
		Duplicates:   report.Duplicated,
	}
	for _, key := range lib.Order {
		if !report.CitedKeys[key] {
			result.Unreferenced = append(result.Unreferenced, key)
		}
	}
	for key := range report.CitedKeys {
		if !lib.Has(key) {
			result.Missing = append(result.Missing, key)
		}
	}

	sort.Strings(result.Unreferenced)
	sort.Strings(result.Missing)
	return result, nil
}
