package menulens

// ExtractStats reports how the image reconciliation went for one snapshot.
type ExtractStats struct {
	// LookupEntries is the number of names the image lookup resolved across
	// all scanner sources.
	LookupEntries int

	// ResolvedFromLookup counts records whose image came from the primary
	// name lookup.
	ResolvedFromLookup int

	// ResolvedByAltText counts records filled by the alt-substring fallback.
	ResolvedByAltText int

	// ResolvedByFilename counts records filled by the slug-filename fallback.
	ResolvedByFilename int
}

// Unresolved returns the number of records left without an image.
func (s ExtractStats) Unresolved(total int) int {
	return total - s.ResolvedFromLookup - s.ResolvedByAltText - s.ResolvedByFilename
}

// ExtractResult holds the extracted catalog of one snapshot.
type ExtractResult struct {
	// Records are the output rows in section-then-item order. The record
	// count always equals the number of named items across all flattened
	// sections; records are never dropped after structure extraction.
	Records []Record

	// SnapshotHash is a content hash of the input HTML, usable as a stable
	// identity for the snapshot.
	SnapshotHash string

	Stats ExtractStats
}

// Extractor turns one rendered page snapshot into catalog records.
//
// The only fatal condition is an absent structured menu block, reported as
// ENOTFOUND with no partial output. Every other defect in the page degrades
// to fewer image candidates or an empty image field.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
