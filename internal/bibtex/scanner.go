package bibtex

import (
	"regexp"
	"strings"
)

// Block is one raw record block cut out of a bibliography file, keyed by
// the citation key captured from its start line.
type Block struct {
	Key  string
	Text string
}

// Match entry start: @type{key,
var entryStartRE = regexp.MustCompile(`@\w+\s*\{([^,]+),`)

// ScanBlocks splits raw bibliography text into per-entry blocks.
//
// The scan is line based. A line whose trimmed form starts with "@" opens a
// new block, but it terminates the previous block only when that block's
// running brace depth has returned to zero; at non-zero depth the line
// joins the current block instead, so a nested "@" inside a field value is
// not mistaken for a record start. The trailing block is flushed at end of
// input even if its depth never closed. Blocks whose start line yields no
// key are dropped.
func ScanBlocks(raw string) []Block {
	var blocks []Block
	var current []string
	depth := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		startLine := current[0]
		text := strings.Join(current, "\n")
		current = nil
		if strings.TrimSpace(text) == "" {
			return
		}
		m := entryStartRE.FindStringSubmatch(startLine)
		if m == nil {
			return
		}
		blocks = append(blocks, Block{Key: strings.TrimSpace(m[1]), Text: text})
	}

	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "@") && depth == 0 {
			flush()
		}
		if len(current) > 0 || strings.HasPrefix(strings.TrimSpace(line), "@") {
			current = append(current, line)
			depth += strings.Count(line, "{") - strings.Count(line, "}")
		}
	}
	flush()

	return blocks
}
