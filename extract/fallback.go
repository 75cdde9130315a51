package extract

import (
	"net/url"
	"strings"

	"menulens"
	"menulens/goquery"
)

// resolveByAltText fills unresolved records by scanning page images with alt
// text in document order: the first image whose lowercased alt text contains
// the record's lowercased name supplies its URL. No further images are
// checked for that record once an alt text matches. Returns the number of
// records resolved.
func resolveByAltText(page *goquery.Page, records []menulens.Record) int {
	var images []goquery.AltImage
	loaded := false

	resolved := 0
	for i := range records {
		if records[i].ImageURL != "" {
			continue
		}
		if !loaded {
			images = page.AltImages()
			loaded = true
		}
		name := strings.ToLower(records[i].Name)
		for _, img := range images {
			if !strings.Contains(strings.ToLower(img.Alt), name) {
				continue
			}
			if u := menulens.CleanImageURL(img.URL); u != "" {
				records[i].ImageURL = u
				resolved++
			}
			break
		}
	}
	return resolved
}

// resolveByFilename fills still-unresolved records by slug-matching their
// names against the file names of every on-page image. The index maps the
// slug of each canonicalized URL's final path segment to that URL, in
// document order, first-writer-wins; the first file-name slug that contains
// the record's name slug wins. Returns the number of records resolved.
func resolveByFilename(page *goquery.Page, records []menulens.Record) int {
	var index []slugEntry
	loaded := false

	resolved := 0
	for i := range records {
		if records[i].ImageURL != "" {
			continue
		}
		if !loaded {
			index = filenameSlugIndex(page)
			loaded = true
		}
		key := menulens.Slugify(records[i].Name)
		if key == "" {
			// An empty slug would match every file name.
			continue
		}
		for _, e := range index {
			if strings.Contains(e.slug, key) {
				records[i].ImageURL = e.url
				resolved++
				break
			}
		}
	}
	return resolved
}

type slugEntry struct {
	slug string
	url  string
}

func filenameSlugIndex(page *goquery.Page) []slugEntry {
	seen := make(map[string]bool)
	var index []slugEntry
	for _, raw := range page.ImageURLs() {
		cu := menulens.CleanImageURL(raw)
		if cu == "" {
			continue
		}
		u, err := url.Parse(cu)
		if err != nil {
			continue
		}
		name := u.Path
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		slug := menulens.Slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		index = append(index, slugEntry{slug: slug, url: cu})
	}
	return index
}
