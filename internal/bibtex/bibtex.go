// Package bibtex parses and regenerates BibTeX records.
//
// The parser is deliberately pragmatic: it splits raw text into per-entry
// blocks by brace balance and decodes each block on its own, tolerating
// input a grammar-correct parser would reject. @string definitions, string
// concatenation, and @comment blocks are out of scope.
package bibtex

import (
	"fmt"
	"strings"
)

// Roles that are parsed into Contributors rather than Fields.
var contributorRoles = map[string]bool{
	"author": true,
	"editor": true,
}

// Entry is one bibliography record.
type Entry struct {
	Key  string // citation key, unique within a library
	Type string // entry type: article, book, inproceedings, ...

	// Fields maps lower-cased field names to raw values. FieldOrder keeps
	// the source order of the names so rendering is stable.
	Fields     map[string]string
	FieldOrder []string

	// Contributors maps a role (author, editor) to person names in source
	// order, split on the BibTeX "and" separator.
	Contributors map[string][]string
}

// Field returns the value for a lower-cased field name, or "".
func (e Entry) Field(name string) string {
	return e.Fields[name]
}

// AuthorString joins the author contributors back into BibTeX form.
func (e Entry) AuthorString() string {
	return strings.Join(e.Contributors["author"], " and ")
}

// SetField sets a field value. Contributor roles (author, editor) are
// re-split on the "and" separator; other names keep their place in
// FieldOrder, with new names appended at the end.
func (e *Entry) SetField(name, value string) {
	name = strings.ToLower(name)

	if contributorRoles[name] {
		if e.Contributors == nil {
			e.Contributors = make(map[string][]string)
		}
		e.Contributors[name] = splitNames(value)
		return
	}

	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[name]; !exists {
		e.FieldOrder = append(e.FieldOrder, name)
	}
	e.Fields[name] = value
}

// ParseError reports input the decoder rejected outright, or input that
// yielded no decodable records at all.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bibtex: %s", e.Msg)
}
