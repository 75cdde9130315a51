package menulens

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ScanObjects locates every balanced JSON object literal in text that carries
// a `"__typename": "<typename>"` discriminator and returns the raw spans in
// document order.
//
// For each (whitespace-tolerant) occurrence of the discriminator, the scan
// walks backward to the nearest preceding '{', then forward with a
// brace-depth counter until the depth returns to zero. Occurrences with no
// preceding brace, spans that never rebalance before the end of text, and
// spans that are not valid JSON are all skipped silently: the surrounding
// text is arbitrary markup and JSON-shaped noise is expected, not an error.
// Overlapping occurrences inside the same object yield duplicate spans;
// callers are expected to apply set-once semantics.
func ScanObjects(text, typename string) []json.RawMessage {
	pat := regexp.MustCompile(`"__typename"\s*:\s*"` + regexp.QuoteMeta(typename) + `"`)

	var objects []json.RawMessage
	for _, loc := range pat.FindAllStringIndex(text, -1) {
		start := strings.LastIndex(text[:loc[0]], "{")
		if start < 0 {
			continue
		}
		span, ok := balancedSpan(text, start)
		if !ok {
			continue
		}
		if !json.Valid([]byte(span)) {
			continue
		}
		objects = append(objects, json.RawMessage(span))
	}
	return objects
}

// balancedSpan returns the substring of text starting at the '{' at start and
// ending where the brace depth first returns to zero. Reports false when the
// braces never rebalance (truncated object).
func balancedSpan(text string, start int) (string, bool) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
