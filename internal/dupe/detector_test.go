package dupe

import (
	"errors"
	"testing"

	"github.com/refsmith/refcheck/internal/library"
)

const libraryBib = `@article{A1,
  author = {smith},
  title = {Deep Learning for NLP},
  year = {2020},
}

@article{B2,
  author = {Jones, Carol},
  title = {Graph Algorithms in Practice},
  year = {2018},
}
`

func loadedLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, _, err := library.Parse(libraryBib)
	if err != nil {
		t.Fatalf("library.Parse() error: %v", err)
	}
	return lib
}

func TestFind_DuplicateDetected(t *testing.T) {
	candidate := `@article{candidate1,
  author = {Smith},
  title = {Deep Learning for NLP},
  year = {2020},
}
`
	matches, warnings, err := Find(candidate, loadedLibrary(t), DefaultTitleThreshold)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(matches) != 1 {
		t.Fatalf("Find() returned %d matches, want 1", len(matches))
	}

	m := matches[0]
	if m.CandidateKey != "candidate1" || m.ExistingKey != "A1" {
		t.Errorf("match = %+v, want candidate1 -> A1", m)
	}
	if m.NormalizedTitle != "deep learning for nlp" {
		t.Errorf("NormalizedTitle = %q", m.NormalizedTitle)
	}
}

func TestFind_UnrelatedTitleNoMatch(t *testing.T) {
	candidate := `@article{fresh1,
  author = {Smith},
  title = {Quantum Chemistry of Solids},
  year = {2020},
}
`
	matches, _, err := Find(candidate, loadedLibrary(t), DefaultTitleThreshold)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Find() returned %d matches, want 0", len(matches))
	}
}

func TestFind_TitleMatchButDifferentAuthorAndYear(t *testing.T) {
	// Title matches A1 but both secondary scores stay at zero, so the
	// match is rejected.
	candidate := `@article{lookalike,
  author = {Zhou, Qing},
  title = {Deep Learning for NLP},
  year = {1987},
}
`
	matches, _, err := Find(candidate, loadedLibrary(t), DefaultTitleThreshold)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Find() returned %d matches, want 0", len(matches))
	}
}

func TestFind_FirstMatchWins(t *testing.T) {
	// Both library entries share the candidate's title; file order decides.
	raw := `@article{first,
  author = {smith},
  title = {Shared Title},
  year = {2020},
}

@article{second,
  author = {smith},
  title = {Shared Title},
  year = {2020},
}
`
	lib, _, err := library.Parse(raw)
	if err != nil {
		t.Fatalf("library.Parse() error: %v", err)
	}

	candidate := `@article{cand,
  author = {Smith},
  title = {Shared Title},
  year = {2020},
}
`
	matches, _, err := Find(candidate, lib, DefaultTitleThreshold)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Find() returned %d matches, want 1 (first match only)", len(matches))
	}
	if matches[0].ExistingKey != "first" {
		t.Errorf("ExistingKey = %q, want first", matches[0].ExistingKey)
	}
}

func TestFind_EmptyLibrary(t *testing.T) {
	_, _, err := Find("@article{x,\n  title = {T},\n}", library.New(), DefaultTitleThreshold)
	if !errors.Is(err, library.ErrNotLoaded) {
		t.Errorf("Find() error = %v, want ErrNotLoaded", err)
	}
}

func TestFind_LowerThresholdWidensNet(t *testing.T) {
	candidate := `@article{near1,
  author = {smith},
  title = {Deep Learning for NLP Tasks},
  year = {2020},
}
`
	lib := loadedLibrary(t)

	strict, _, err := Find(candidate, lib, 0.99)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	loose, _, err := Find(candidate, lib, 0.7)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}

	if len(strict) != 0 {
		t.Errorf("threshold 0.99 matched %d, want 0", len(strict))
	}
	if len(loose) != 1 {
		t.Errorf("threshold 0.7 matched %d, want 1", len(loose))
	}
}
