// Package goquery implements menulens extraction primitives over a parsed
// HTML snapshot: the image candidate scanners, the structured menu extractor,
// and the image inventory used by the fallback resolver.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"menulens"
)

// Page wraps one HTML snapshot together with its parsed tree. Both are
// read-only after construction; a Page is safe for concurrent use.
type Page struct {
	html string
	doc  *goquery.Document
}

// NewPage parses the snapshot HTML.
func NewPage(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, menulens.Errorf(menulens.EINVALID, "failed to parse HTML: %v", err)
	}
	return &Page{html: html, doc: doc}, nil
}

// HTML returns the raw snapshot text.
func (p *Page) HTML() string {
	return p.html
}

// AltImage is an image element with a non-empty alt text, in document order.
type AltImage struct {
	Alt string
	URL string
}

// AltImages returns every image element carrying non-empty alt text, with the
// URL taken from the preferred source attributes. Elements with no resolvable
// URL are skipped.
func (p *Page) AltImages() []AltImage {
	var images []AltImage
	p.doc.Find("img[alt]").Each(func(_ int, sel *goquery.Selection) {
		alt := strings.TrimSpace(sel.AttrOr("alt", ""))
		if alt == "" {
			return
		}
		url := firstImageAttr(sel)
		if url == "" {
			return
		}
		images = append(images, AltImage{Alt: alt, URL: url})
	})
	return images
}

// ImageURLs returns the URL of every image element on the page in document
// order, using the preferred source attributes. Elements with no resolvable
// URL are skipped.
func (p *Page) ImageURLs() []string {
	var urls []string
	p.doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if url := firstImageAttr(sel); url != "" {
			urls = append(urls, url)
		}
	})
	return urls
}

// imageSrcAttrs is the preference order for direct image source attributes.
// Lazy-loading variants come after the plain src; the first entry of srcset
// is the last resort.
var imageSrcAttrs = []string{"src", "data-src", "data-lazy-src"}

func firstImageAttr(sel *goquery.Selection) string {
	for _, attr := range imageSrcAttrs {
		if v := strings.TrimSpace(sel.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	if srcset := sel.AttrOr("srcset", ""); srcset != "" {
		first, _, _ := strings.Cut(srcset, ",")
		if fields := strings.Fields(first); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}
