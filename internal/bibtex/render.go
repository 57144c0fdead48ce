package bibtex

import (
	"fmt"
	"strings"
)

// Render regenerates a BibTeX block from an entry, using the same syntax
// the parser accepts so a rendered block round-trips. Contributor roles
// come first, then the remaining fields in source order.
func Render(e Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@%s{%s,\n", e.Type, e.Key)

	for _, role := range []string{"author", "editor"} {
		if names := e.Contributors[role]; len(names) > 0 {
			fmt.Fprintf(&b, "  %s = {%s},\n", role, strings.Join(names, " and "))
		}
	}
	for _, name := range e.FieldOrder {
		fmt.Fprintf(&b, "  %s = {%s},\n", name, e.Fields[name])
	}
	b.WriteString("}")

	return b.String()
}
