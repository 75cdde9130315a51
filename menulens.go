// Package menulens extracts a clean, deduplicated table of catalog items
// (category, name, description, price, image URL) from a single rendered HTML
// snapshot of a dynamically-generated store menu page. The page embeds several
// partially-overlapping, partially-unreliable encodings of the same data
// (linked-data markup, hydration state, loose JSON fragments, image
// attributes, inline styles); menulens reconciles them under a fixed
// precedence policy with string-similarity fallbacks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package menulens
