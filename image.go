package menulens

// ImageSource identifies which embedding mechanism produced an image
// candidate. The declaration order is the precedence order: when two sources
// disagree on the same name, the lower-valued source wins.
type ImageSource int

// Image candidate sources, highest precedence first.
const (
	SourceGraphQLBlob ImageSource = iota
	SourceHydrationCache
	SourceBroadRegex
	SourceQuickRegex
	SourceImgAttribute
	SourceInlineStyle
)

// String returns the source's identifier for diagnostics.
func (s ImageSource) String() string {
	switch s {
	case SourceGraphQLBlob:
		return "graphql_blob"
	case SourceHydrationCache:
		return "hydration_cache"
	case SourceBroadRegex:
		return "broad_regex"
	case SourceQuickRegex:
		return "quick_regex"
	case SourceImgAttribute:
		return "img_attribute"
	case SourceInlineStyle:
		return "inline_style"
	}
	return "unknown"
}

// ImageCandidate is a (display name, image URL) pair produced by one scanner.
type ImageCandidate struct {
	Name   string
	URL    string
	Source ImageSource
}

// ImageLookup maps exact display names to a single canonical image URL.
// Insertion is first-writer-wins: once a name has a URL, later writes for the
// same name are ignored. Feeding candidates in precedence order therefore
// makes source order a strict precedence policy.
type ImageLookup struct {
	urls map[string]string
}

// NewImageLookup returns an empty lookup.
func NewImageLookup() *ImageLookup {
	return &ImageLookup{urls: make(map[string]string)}
}

// SetDefault inserts url under name unless name is already present.
// Returns true if the entry was inserted.
func (l *ImageLookup) SetDefault(name, url string) bool {
	if _, ok := l.urls[name]; ok {
		return false
	}
	l.urls[name] = url
	return true
}

// Get returns the URL for name, or the empty string if name is unresolved.
func (l *ImageLookup) Get(name string) string {
	return l.urls[name]
}

// Len returns the number of resolved names.
func (l *ImageLookup) Len() int {
	return len(l.urls)
}
