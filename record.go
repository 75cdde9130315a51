package menulens

import (
	"context"
	"strings"
)

// RecordColumns is the fixed output column order. Downstream writers must
// preserve it and must not re-sort or deduplicate rows.
var RecordColumns = []string{"Category", "Name", "Description", "Price (USD)", "Image URL"}

// Record is one extracted catalog item. Records are created once per named
// menu item, enriched with an image URL in two stages (primary lookup, then
// the fallback resolver), and immutable after serialization. ImageURL is the
// empty string when no source could resolve an image; that is valid output,
// not an error.
type Record struct {
	Category    string
	Name        string
	Description string
	Price       string
	ImageURL    string
}

// Fields returns the record's values in RecordColumns order.
func (r *Record) Fields() []string {
	return []string{r.Category, r.Name, r.Description, r.Price, r.ImageURL}
}

// MenuSection is one flattened category of the page's structured menu.
type MenuSection struct {
	Name  string
	Items []MenuItem
}

// MenuItem is a raw item as found in the structured markup. Name is required;
// items with an empty trimmed name are dropped before records are built.
type MenuItem struct {
	Name        string
	Description string
	RawPrice    string
}

// NormalizePrice strips every character that is not a digit or '.' from a raw
// price string. A price with no digits at all (including an absent one)
// normalizes to "0".
func NormalizePrice(raw string) string {
	var b strings.Builder
	hasDigit := false
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			hasDigit = true
			b.WriteRune(r)
		} else if r == '.' {
			b.WriteRune(r)
		}
	}
	if !hasDigit {
		return "0"
	}
	return b.String()
}

// RecordWriter persists an ordered set of extracted records. Implementations
// must preserve the given row order and RecordColumns field order.
type RecordWriter interface {
	WriteRecords(ctx context.Context, records []Record) error
}
