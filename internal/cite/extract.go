// Package cite extracts citation commands from document source and
// reconciles them against a loaded library.
package cite

import (
	"regexp"
	"strings"
)

// Matches \cite{...} and \citep{...} with a comma-separated key list.
var citeRE = regexp.MustCompile(`\\citep?\{([^}]*)\}`)

// Report tallies the citation keys found in a document.
type Report struct {
	// CitedKeys holds every distinct key cited at least once.
	CitedKeys map[string]bool
	// Duplicated maps keys cited more than once to their count. Repeats
	// within one command and across commands are indistinguishable.
	Duplicated map[string]int
}

// Extract scans document text for citation commands and tallies the keys
// they reference. Empty pieces from stray commas are discarded.
func Extract(document string) Report {
	counts := make(map[string]int)
	for _, m := range citeRE.FindAllStringSubmatch(document, -1) {
		for _, piece := range strings.Split(m[1], ",") {
			if key := strings.TrimSpace(piece); key != "" {
				counts[key]++
			}
		}
	}

	report := Report{
		CitedKeys:  make(map[string]bool, len(counts)),
		Duplicated: make(map[string]int),
	}
	for key, n := range counts {
		report.CitedKeys[key] = true
		if n > 1 {
			report.Duplicated[key] = n
		}
	}
	return report
}
