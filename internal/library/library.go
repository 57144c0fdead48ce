// Package library holds a loaded bibliography: parsed records, their file
// order, and the verbatim source block for each key.
package library

import (
	"errors"
	"fmt"
	"strings"

	"github.com/refsmith/refcheck/internal/bibtex"
)

// ErrNotLoaded reports an operation that needs a loaded library before one
// exists.
var ErrNotLoaded = errors.New("no bibliography loaded")

// Library is the loaded collection of records. Order, Entries and Verbatim
// always share one key set; mutators update all three or none.
type Library struct {
	Order    []string
	Entries  map[string]bibtex.Entry
	Verbatim map[string]string
}

// New creates an empty library.
func New() *Library {
	return &Library{
		Entries:  make(map[string]bibtex.Entry),
		Verbatim: make(map[string]string),
	}
}

// Len returns the number of records.
func (l *Library) Len() int {
	return len(l.Order)
}

// Has reports whether key is present.
func (l *Library) Has(key string) bool {
	_, ok := l.Entries[key]
	return ok
}

// Get returns the record for key.
func (l *Library) Get(key string) (bibtex.Entry, bool) {
	e, ok := l.Entries[key]
	return e, ok
}

// Keys returns a copy of the entry order.
func (l *Library) Keys() []string {
	keys := make([]string, len(l.Order))
	copy(keys, l.Order)
	return keys
}

// Parse builds a library from raw bibliography text.
//
// Individual blocks the decoder rejects are skipped and reported in the
// returned warnings so one bad record does not abort a whole file. Non-empty
// input that yields no records at all fails with *bibtex.ParseError instead:
// that signals "could not parse" and the caller should reject the input
// rather than accept an empty set. The returned library is always fully
// consistent; on error it is nil.
func Parse(raw string) (*Library, []string, error) {
	lib := New()
	var warnings []string

	for _, block := range bibtex.ScanBlocks(raw) {
		entries, err := bibtex.ParseBlock(block.Text)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping block %q: %v", block.Key, err))
			continue
		}
		// The whole block is the verbatim text for every key decoded
		// from it.
		for _, e := range entries {
			if lib.Has(e.Key) {
				warnings = append(warnings, fmt.Sprintf("duplicate key %q: keeping the first occurrence", e.Key))
				continue
			}
			lib.Order = append(lib.Order, e.Key)
			lib.Entries[e.Key] = e
			lib.Verbatim[e.Key] = strings.TrimSpace(block.Text)
		}
	}

	if lib.Len() == 0 && strings.TrimSpace(raw) != "" {
		return nil, warnings, &bibtex.ParseError{Msg: "no parsable entries in input"}
	}
	return lib, warnings, nil
}

// Insert places entries at position pos in the order: 0 means the
// beginning, anything >= Len() the end. Nothing is applied unless every
// entry is new and carries verbatim text.
func (l *Library) Insert(pos int, entries []bibtex.Entry, verbatim map[string]string) error {
	for _, e := range entries {
		if e.Key == "" {
			return fmt.Errorf("entry with empty key")
		}
		if l.Has(e.Key) {
			return fmt.Errorf("key %q already in library", e.Key)
		}
		if _, ok := verbatim[e.Key]; !ok {
			return fmt.Errorf("no verbatim text for key %q", e.Key)
		}
	}

	if pos < 0 {
		pos = 0
	}
	if pos > len(l.Order) {
		pos = len(l.Order)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
		l.Entries[e.Key] = e
		l.Verbatim[e.Key] = strings.TrimSpace(verbatim[e.Key])
	}

	order := make([]string, 0, len(l.Order)+len(keys))
	order = append(order, l.Order[:pos]...)
	order = append(order, keys...)
	order = append(order, l.Order[pos:]...)
	l.Order = order

	return nil
}

// PositionAfter returns the insert position just after key, or an error if
// the key is unknown.
func (l *Library) PositionAfter(key string) (int, error) {
	for i, k := range l.Order {
		if k == key {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("key %q not in library", key)
}

// Delete removes a record from all three structures.
func (l *Library) Delete(key string) error {
	if !l.Has(key) {
		return fmt.Errorf("key %q not in library", key)
	}
	delete(l.Entries, key)
	delete(l.Verbatim, key)
	for i, k := range l.Order {
		if k == key {
			l.Order = append(l.Order[:i], l.Order[i+1:]...)
			break
		}
	}
	return nil
}

// Update replaces the record with e.Key and regenerates its verbatim block
// from the edited entry, keeping the save contract intact.
func (l *Library) Update(e bibtex.Entry) error {
	if !l.Has(e.Key) {
		return fmt.Errorf("key %q not in library", e.Key)
	}
	l.Entries[e.Key] = e
	l.Verbatim[e.Key] = bibtex.Render(e)
	return nil
}

// Render concatenates the verbatim blocks in entry order, separated by a
// blank line. Re-parsing the result yields the same key set.
func (l *Library) Render() string {
	if len(l.Order) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(l.Order))
	for _, key := range l.Order {
		blocks = append(blocks, l.Verbatim[key])
	}
	return strings.Join(blocks, "\n\n") + "\n"
}
