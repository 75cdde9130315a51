package menulens

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// CleanImageURL canonicalizes an image URL into a stable key by truncating at
// the first '?'. Returns the empty string for empty input or when the result
// is not an http(s) URL; an empty result means the candidate is discarded.
func CleanImageURL(raw string) string {
	if raw == "" {
		return ""
	}
	base, _, _ := strings.Cut(raw, "?")
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return base
}

// Slugify normalizes a display name into a comparison key used only for
// fuzzy fallback matching: NFKD-decomposed, lowercased, with every run of
// non-alphanumeric characters collapsed to a single '-', trimmed of leading
// and trailing separators. Two names match for fallback purposes iff their
// slugs are related by containment.
func Slugify(s string) string {
	s = norm.NFKD.String(s)
	s = slugSeparators.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
