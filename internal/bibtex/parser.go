package bibtex

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var andSeparatorRE = regexp.MustCompile(`\s+[aA][nN][dD]\s+`)

// ParseBlock decodes the @type{key, field = {value}, ...} records in a
// block of text. A block normally holds one record but may decode to
// several. Returns a *ParseError when the text holds no record start or a
// record the decoder cannot tolerate (missing key, unterminated value).
func ParseBlock(text string) ([]Entry, error) {
	var entries []Entry

	runes := []rune(text)
	i := 0
	for i < len(runes) {
		if runes[i] != '@' {
			i++
			continue
		}
		entry, next, err := parseEntry(runes, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		i = next
	}

	if len(entries) == 0 {
		return nil, &ParseError{Msg: "no entry start found"}
	}
	return entries, nil
}

// parseEntry decodes a single record starting at the "@" at position i.
// Returns the entry and the position just past its closing brace.
func parseEntry(runes []rune, i int) (Entry, int, error) {
	i++ // skip '@'

	start := i
	for i < len(runes) && runes[i] != '{' {
		i++
	}
	if i >= len(runes) {
		return Entry{}, 0, &ParseError{Msg: "entry has no opening brace"}
	}
	entryType := strings.ToLower(strings.TrimSpace(string(runes[start:i])))
	if entryType == "" {
		return Entry{}, 0, &ParseError{Msg: "entry has no type"}
	}
	i++ // skip '{'

	start = i
	for i < len(runes) && runes[i] != ',' && runes[i] != '}' {
		i++
	}
	if i >= len(runes) {
		return Entry{}, 0, &ParseError{Msg: "unterminated entry"}
	}
	key := strings.TrimSpace(string(runes[start:i]))
	if key == "" {
		return Entry{}, 0, &ParseError{Msg: "entry has no key"}
	}

	entry := Entry{
		Key:          key,
		Type:         entryType,
		Fields:       make(map[string]string),
		Contributors: make(map[string][]string),
	}

	for {
		// Between fields: skip separators until a name or the closing brace.
		for i < len(runes) && (runes[i] == ',' || unicode.IsSpace(runes[i])) {
			i++
		}
		if i >= len(runes) {
			return Entry{}, 0, &ParseError{Msg: fmt.Sprintf("entry %q is unterminated", key)}
		}
		if runes[i] == '}' {
			return entry, i + 1, nil
		}

		start = i
		for i < len(runes) && runes[i] != '=' && runes[i] != '}' {
			i++
		}
		if i >= len(runes) || runes[i] != '=' {
			return Entry{}, 0, &ParseError{Msg: fmt.Sprintf("entry %q: field without value", key)}
		}
		name := strings.ToLower(strings.TrimSpace(string(runes[start:i])))
		i++ // skip '='

		value, next, err := parseValue(runes, i, key)
		if err != nil {
			return Entry{}, 0, err
		}
		i = next

		if name == "" {
			continue
		}
		if contributorRoles[name] {
			entry.Contributors[name] = splitNames(value)
			continue
		}
		if _, seen := entry.Fields[name]; !seen {
			entry.FieldOrder = append(entry.FieldOrder, name)
		}
		entry.Fields[name] = value
	}
}

// parseValue decodes one field value: brace-delimited with nesting, quoted,
// or a bare token running to the next comma or closing brace.
func parseValue(runes []rune, i int, key string) (string, int, error) {
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i >= len(runes) {
		return "", 0, &ParseError{Msg: fmt.Sprintf("entry %q: missing field value", key)}
	}

	switch runes[i] {
	case '{':
		depth := 1
		start := i + 1
		for j := start; j < len(runes); j++ {
			switch runes[j] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return string(runes[start:j]), j + 1, nil
				}
			}
		}
		return "", 0, &ParseError{Msg: fmt.Sprintf("entry %q: unbalanced braces in field value", key)}
	case '"':
		start := i + 1
		for j := start; j < len(runes); j++ {
			if runes[j] == '"' {
				return string(runes[start:j]), j + 1, nil
			}
		}
		return "", 0, &ParseError{Msg: fmt.Sprintf("entry %q: unterminated quoted value", key)}
	default:
		start := i
		for i < len(runes) && runes[i] != ',' && runes[i] != '}' && runes[i] != '\n' {
			i++
		}
		return strings.TrimSpace(string(runes[start:i])), i, nil
	}
}

// splitNames splits a contributor field on the BibTeX "and" separator.
func splitNames(value string) []string {
	var names []string
	for _, name := range andSeparatorRE.Split(value, -1) {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}
