package translator

import (
	"strings"
)

// reconstructPreviewLen bounds the raw-response excerpt embedded in parse
// errors.
const reconstructPreviewLen = 300

// Reconstruct turns free-form provider text into a key/value map for the
// given keys. It first tries exact "key: value" matching for every key; when
// that does not cover the full key set it filters structural noise from the
// response and zips the remaining lines onto the still-unmatched keys in
// original order.
func Reconstruct(keys []string, raw string) (map[string]string, error) {
	result := make(map[string]string, len(keys))

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	// Pass 1: exact "key: value" matches.
	usedLines := make(map[int]bool, len(lines))
	for _, key := range keys {
		for i, line := range lines {
			if usedLines[i] {
				continue
			}
			if value, ok := matchKeyLine(line, key); ok {
				result[key] = value
				usedLines[i] = true
				break
			}
		}
	}
	if len(result) == len(keys) {
		return result, nil
	}

	// Pass 2: drop noise, then zip the remaining candidate lines onto the
	// unmatched keys positionally.
	var candidates []string
	for i, line := range lines {
		if usedLines[i] || isNoiseLine(line) {
			continue
		}
		candidates = append(candidates, line)
	}

	ci := 0
	for _, key := range keys {
		if _, done := result[key]; done {
			continue
		}
		if ci >= len(candidates) {
			break
		}
		line := candidates[ci]
		ci++
		if value, ok := matchKeyLine(line, key); ok {
			result[key] = value
		} else if idx := strings.Index(line, ": "); idx > 0 {
			result[key] = line[idx+2:]
		} else {
			result[key] = line
		}
	}

	if len(result) != len(keys) {
		return nil, &ParseError{
			Expected: len(keys),
			Found:    len(result),
			Preview:  truncate(raw, reconstructPreviewLen),
		}
	}
	return result, nil
}

// matchKeyLine checks whether line is "key: value" for exactly this key.
func matchKeyLine(line, key string) (string, bool) {
	if !strings.HasPrefix(line, key) {
		return "", false
	}
	rest := line[len(key):]
	if !strings.HasPrefix(rest, ":") {
		return "", false
	}
	return strings.TrimSpace(rest[1:]), true
}

// isNoiseLine filters structural noise the model wraps around the actual
// translations: code fences, explanatory boilerplate, headings and list
// markers.
func isNoiseLine(line string) bool {
	if strings.HasPrefix(line, "```") {
		return true
	}
	lower := strings.ToLower(line)
	for _, word := range []string{"translation", "translated", "here"} {
		if strings.Contains(lower, word) {
			return true
		}
	}
	for _, prefix := range []string{"#", "- ", "* ", "> "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Validate checks a reconstructed map against the chunk that was sent:
// exactly the same key set, and no empty values.
func Validate(keys []string, result map[string]string) error {
	var missing, empty []string
	for _, key := range keys {
		value, ok := result[key]
		if !ok {
			missing = append(missing, key)
		} else if strings.TrimSpace(value) == "" {
			empty = append(empty, key)
		}
	}
	if len(missing) > 0 || len(empty) > 0 || len(result) != len(keys) {
		return &ValidationError{
			Expected:    len(keys),
			Found:       len(result),
			MissingKeys: missing,
			EmptyKeys:   empty,
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
