package bibtex

import (
	"reflect"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	e := Entry{
		Key:  "smith2020",
		Type: "article",
		Fields: map[string]string{
			"title": "Deep Learning for NLP",
			"year":  "2020",
		},
		FieldOrder: []string{"title", "year"},
		Contributors: map[string][]string{
			"author": {"Smith, John", "Doe, Jane"},
		},
	}

	got := Render(e)

	if !strings.HasPrefix(got, "@article{smith2020,") {
		t.Errorf("Render() should start with @article{smith2020, got:\n%s", got)
	}
	if !strings.Contains(got, "author = {Smith, John and Doe, Jane}") {
		t.Errorf("Render() missing author line, got:\n%s", got)
	}
	if !strings.Contains(got, "title = {Deep Learning for NLP}") {
		t.Errorf("Render() missing title line, got:\n%s", got)
	}
	if !strings.HasSuffix(got, "}") {
		t.Errorf("Render() should end with }, got:\n%s", got)
	}

	// title must come before year, matching FieldOrder.
	if strings.Index(got, "title =") > strings.Index(got, "year =") {
		t.Errorf("Render() field order not preserved, got:\n%s", got)
	}
}

func TestRender_RoundTrip(t *testing.T) {
	block := `@article{round2021,
  author = {Trip, Round},
  title = {On {Round} Trips},
  year = {2021},
  doi = {10.1234/round},
}`

	entries, err := ParseBlock(block)
	if err != nil {
		t.Fatalf("ParseBlock() error: %v", err)
	}

	rendered := Render(entries[0])
	reparsed, err := ParseBlock(rendered)
	if err != nil {
		t.Fatalf("ParseBlock(rendered) error: %v", err)
	}

	if !reflect.DeepEqual(entries[0], reparsed[0]) {
		t.Errorf("round trip changed the entry:\nfirst:  %+v\nsecond: %+v", entries[0], reparsed[0])
	}
}
