// Package dupe flags bibliography records that likely duplicate entries in
// a loaded library.
package dupe

import (
	"strings"

	"github.com/refsmith/refcheck/internal/bibtex"
	"github.com/refsmith/refcheck/internal/library"
)

const (
	// DefaultTitleThreshold is the title similarity a candidate must reach
	// before the secondary checks run.
	DefaultTitleThreshold = 0.9

	// metadataThreshold is the floor both the year and author ratios must
	// exceed once the titles agree.
	metadataThreshold = 0.3
)

// Match pairs a candidate record with the library entry it likely
// duplicates.
type Match struct {
	CandidateKey    string `json:"candidate_key"`
	ExistingKey     string `json:"existing_key"`
	NormalizedTitle string `json:"normalized_title"`
	Reason          string `json:"reason"`
}

// Find parses candidateText and reports likely duplicates against lib,
// returning any non-fatal parse warnings alongside the matches.
//
// The scan is a recall-oriented heuristic, not exact matching: a title
// ratio at or above titleThreshold plus weak year and author agreement is
// enough, and the first library entry (in file order) that qualifies wins.
// False positives are expected; results go to a human for confirmation.
// Fails with library.ErrNotLoaded when lib is empty.
func Find(candidateText string, lib *library.Library, titleThreshold float64) ([]Match, []string, error) {
	if lib == nil || lib.Len() == 0 {
		return nil, nil, library.ErrNotLoaded
	}
	if titleThreshold <= 0 {
		titleThreshold = DefaultTitleThreshold
	}

	candidates, warnings, err := library.Parse(candidateText)
	if err != nil {
		return nil, warnings, err
	}

	var matches []Match
	for _, candKey := range candidates.Order {
		cand, _ := candidates.Get(candKey)
		candTitle := bibtex.NormalizeTitle(cand.Field("title"))
		candAuthor := strings.ToLower(cand.AuthorString())

		for _, key := range lib.Order {
			entry, _ := lib.Get(key)
			if Ratio(candTitle, bibtex.NormalizeTitle(entry.Field("title"))) < titleThreshold {
				continue
			}
			yearScore := Ratio(cand.Field("year"), entry.Field("year"))
			authorScore := Ratio(candAuthor, strings.ToLower(entry.AuthorString()))
			if yearScore > metadataThreshold && authorScore > metadataThreshold {
				matches = append(matches, Match{
					CandidateKey:    candKey,
					ExistingKey:     key,
					NormalizedTitle: candTitle,
					Reason:          "title match + partial metadata",
				})
				break
			}
		}
	}

	return matches, warnings, nil
}
