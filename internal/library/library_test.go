package library

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/refsmith/refcheck/internal/bibtex"
)

const sampleBib = `@article{alpha2020,
  author = {Adams, Alice},
  title = {Alpha},
  year = {2020},
}

@book{beta2021,
  author = {Brown, Bob},
  title = {Beta},
  year = {2021},
}

@misc{gamma2022,
  title = {Gamma},
  year = {2022},
}
`

func mustParse(t *testing.T, raw string) *Library {
	t.Helper()
	lib, _, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return lib
}

// checkConsistent verifies the three-way key-set invariant.
func checkConsistent(t *testing.T, lib *Library) {
	t.Helper()
	if len(lib.Order) != len(lib.Entries) || len(lib.Order) != len(lib.Verbatim) {
		t.Fatalf("inconsistent sizes: order=%d entries=%d verbatim=%d",
			len(lib.Order), len(lib.Entries), len(lib.Verbatim))
	}
	for _, key := range lib.Order {
		if _, ok := lib.Entries[key]; !ok {
			t.Errorf("key %q in order but not in entries", key)
		}
		if _, ok := lib.Verbatim[key]; !ok {
			t.Errorf("key %q in order but not in verbatim", key)
		}
	}
}

func TestParse(t *testing.T) {
	lib := mustParse(t, sampleBib)

	want := []string{"alpha2020", "beta2021", "gamma2022"}
	if !reflect.DeepEqual(lib.Order, want) {
		t.Errorf("Order = %v, want %v", lib.Order, want)
	}
	checkConsistent(t, lib)

	if !strings.HasPrefix(lib.Verbatim["beta2021"], "@book{beta2021,") {
		t.Errorf("verbatim text not preserved: %q", lib.Verbatim["beta2021"])
	}
}

func TestParse_BadBlockSkippedWithWarning(t *testing.T) {
	raw := `@article{good2020,
  year = {2020},
}

@article{bad2021,
  title
}

@article{also2022,
  year = {2022},
}
`
	lib, warnings, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if lib.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (bad block skipped)", lib.Len())
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "bad2021") {
		t.Errorf("warnings = %v, want one mentioning bad2021", warnings)
	}
}

func TestParse_NoEntriesIsError(t *testing.T) {
	_, _, err := Parse("this is not a bibliography at all")
	if err == nil {
		t.Fatal("Parse() succeeded on garbage, want error")
	}
	var parseErr *bibtex.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Parse() error %T, want *bibtex.ParseError", err)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	lib, warnings, err := Parse("  \n\n ")
	if err != nil {
		t.Fatalf("Parse() on blank input error: %v", err)
	}
	if lib.Len() != 0 || len(warnings) != 0 {
		t.Errorf("blank input should give an empty library, got %d entries, %d warnings",
			lib.Len(), len(warnings))
	}
}

func TestParse_DuplicateKeyKeepsFirst(t *testing.T) {
	raw := `@article{dup2020,
  title = {First},
}

@article{dup2020,
  title = {Second},
}
`
	lib, warnings, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if lib.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", lib.Len())
	}
	if got := lib.Entries["dup2020"].Field("title"); got != "First" {
		t.Errorf("kept title = %q, want First", got)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one duplicate warning", warnings)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	lib := mustParse(t, sampleBib)

	again := mustParse(t, lib.Render())
	if !reflect.DeepEqual(again.Order, lib.Order) {
		t.Errorf("round trip changed key set: %v != %v", again.Order, lib.Order)
	}
}

func TestInsert(t *testing.T) {
	lib := mustParse(t, sampleBib)

	entry := bibtex.Entry{
		Key: "delta2023", Type: "article",
		Fields: map[string]string{"year": "2023"}, FieldOrder: []string{"year"},
		Contributors: map[string][]string{},
	}
	verbatim := map[string]string{"delta2023": "@article{delta2023,\n  year = {2023},\n}"}

	pos, err := lib.PositionAfter("alpha2020")
	if err != nil {
		t.Fatalf("PositionAfter() error: %v", err)
	}
	if err := lib.Insert(pos, []bibtex.Entry{entry}, verbatim); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	want := []string{"alpha2020", "delta2023", "beta2021", "gamma2022"}
	if !reflect.DeepEqual(lib.Order, want) {
		t.Errorf("Order = %v, want %v", lib.Order, want)
	}
	checkConsistent(t, lib)
}

func TestInsert_ExistingKeyRejectedAtomically(t *testing.T) {
	lib := mustParse(t, sampleBib)

	fresh := bibtex.Entry{Key: "new2024", Type: "misc"}
	clash := bibtex.Entry{Key: "alpha2020", Type: "misc"}
	verbatim := map[string]string{
		"new2024":   "@misc{new2024,\n}",
		"alpha2020": "@misc{alpha2020,\n}",
	}

	err := lib.Insert(0, []bibtex.Entry{fresh, clash}, verbatim)
	if err == nil {
		t.Fatal("Insert() with clashing key should fail")
	}
	if lib.Has("new2024") {
		t.Error("Insert() partially applied: new2024 was added despite the error")
	}
	if lib.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (untouched)", lib.Len())
	}
	checkConsistent(t, lib)
}

func TestDelete(t *testing.T) {
	lib := mustParse(t, sampleBib)

	if err := lib.Delete("beta2021"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	want := []string{"alpha2020", "gamma2022"}
	if !reflect.DeepEqual(lib.Order, want) {
		t.Errorf("Order = %v, want %v", lib.Order, want)
	}
	checkConsistent(t, lib)

	if err := lib.Delete("beta2021"); err == nil {
		t.Error("Delete() of a missing key should fail")
	}
}

func TestUpdate_RegeneratesVerbatim(t *testing.T) {
	lib := mustParse(t, sampleBib)

	e, _ := lib.Get("alpha2020")
	e.Fields["title"] = "Alpha, Revised"
	if err := lib.Update(e); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	if !strings.Contains(lib.Verbatim["alpha2020"], "Alpha, Revised") {
		t.Errorf("verbatim not regenerated: %q", lib.Verbatim["alpha2020"])
	}

	// The regenerated block must still round-trip through the parser.
	again := mustParse(t, lib.Render())
	if got := again.Entries["alpha2020"].Field("title"); got != "Alpha, Revised" {
		t.Errorf("round trip after update: title = %q", got)
	}
	checkConsistent(t, lib)
}
