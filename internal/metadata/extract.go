package metadata

import (
	"strings"
	"unicode/utf8"
)

// FieldExtractor pulls a scalar field out of raw manifest text.
// It reports false when the field is absent or cannot be read as a scalar.
type FieldExtractor func(content, field string) (string, bool)

// ExtractTOMLField finds `field = "value"` on a single line.
//
// This is a line heuristic, not a TOML parser: the first line whose trimmed
// text is field followed by '=' (optionally after whitespace) is split at
// the first '='. Surrounding whitespace and quotes (basic or literal) are
// stripped; empty values are skipped and the scan continues.
func ExtractTOMLField(content, field string) (string, bool) {
	if field == "" {
		return "", false
	}
	for line := range strings.Lines(content) {
		trimmed := strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(trimmed, field)
		if !ok {
			continue
		}
		value, ok := strings.CutPrefix(strings.TrimLeft(rest, " \t"), "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.Trim(strings.TrimSpace(value), `"'`))
		if acceptable(value) {
			return value, true
		}
	}
	return "", false
}

// ExtractJSONField finds `"field": "value"` on a single line.
//
// The first line containing the quoted field name is split at the first ':'.
// Whitespace, trailing commas, a closing brace on the same line and double
// quotes are stripped. Values that
// open an object are rejected: nested structures are never interpreted.
func ExtractJSONField(content, field string) (string, bool) {
	if field == "" {
		return "", false
	}
	key := `"` + field + `"`
	for line := range strings.Lines(content) {
		trimmed := strings.TrimSpace(line)
		if !strings.Contains(trimmed, key) {
			continue
		}
		_, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(value), ",}"))
		value = strings.TrimSpace(strings.Trim(value, `"`))
		if strings.HasPrefix(value, "{") {
			continue
		}
		if acceptable(value) {
			return value, true
		}
	}
	return "", false
}

// acceptable rejects empty values and byte garbage from binary manifests.
func acceptable(value string) bool {
	return value != "" && utf8.ValidString(value)
}
