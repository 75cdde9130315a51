package goquery

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"menulens"
)

// Type markers identifying image-bearing blobs in the page's inline data.
const (
	typeCarouselItem = "StorePageCarouselItem"
	typeMenuPageItem = "MenuPageItem"
)

var typeMarkers = []string{typeCarouselItem, typeMenuPageItem}

// itemBlob is the shape shared by the typed inline blobs. The image URL field
// name varies between embeddings, so both spellings are decoded and the first
// non-empty one wins.
type itemBlob struct {
	Typename string `json:"__typename"`
	Name     string `json:"name"`
	ImgURL   string `json:"imgUrl"`
	ImageURL string `json:"imageUrl"`
}

func (b itemBlob) imageURL() string {
	if b.ImgURL != "" {
		return b.ImgURL
	}
	return b.ImageURL
}

func (b itemBlob) candidate(source menulens.ImageSource) (menulens.ImageCandidate, bool) {
	name := strings.TrimSpace(b.Name)
	url := strings.TrimSpace(b.imageURL())
	if name == "" || url == "" {
		return menulens.ImageCandidate{}, false
	}
	return menulens.ImageCandidate{Name: name, URL: url, Source: source}, true
}

// ScanGraphQLBlobs recovers typed item objects from the raw HTML and from
// every script element's text using the balanced-delimiter object scanner.
// The raw HTML subsumes the script texts, so duplicate candidates are
// expected; the lookup's set-once semantics absorb them.
func (p *Page) ScanGraphQLBlobs() []menulens.ImageCandidate {
	texts := []string{p.html}
	p.doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if t := sel.Text(); t != "" {
			texts = append(texts, t)
		}
	})

	var candidates []menulens.ImageCandidate
	for _, text := range texts {
		for _, marker := range typeMarkers {
			for _, raw := range menulens.ScanObjects(text, marker) {
				var blob itemBlob
				if err := json.Unmarshal(raw, &blob); err != nil {
					continue
				}
				if c, ok := blob.candidate(menulens.SourceGraphQLBlob); ok {
					candidates = append(candidates, c)
				}
			}
		}
	}
	return candidates
}

// hydrationScriptID is the element id of the embedded application-state
// payload left behind by the page's server rendering.
const hydrationScriptID = "__NEXT_DATA__"

// ScanHydrationCache walks the normalized cache inside the hydration payload
// and extracts every entry carrying one of the known type markers. A missing
// payload contributes nothing; an unparseable one degrades to zero candidates
// with the returned error as a diagnostic, never a failure.
func (p *Page) ScanHydrationCache() ([]menulens.ImageCandidate, error) {
	script := p.doc.Find("script#" + hydrationScriptID).First()
	if script.Length() == 0 {
		return nil, nil
	}
	text := script.Text()
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var payload struct {
		Props struct {
			ApolloState map[string]json.RawMessage `json:"apolloState"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, menulens.Errorf(menulens.EINVALID, "hydration payload is not valid JSON: %v", err)
	}

	// Map iteration order is randomized; sort the cache keys so identical
	// snapshots always yield identical candidate order.
	keys := make([]string, 0, len(payload.Props.ApolloState))
	for k := range payload.Props.ApolloState {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var candidates []menulens.ImageCandidate
	for _, k := range keys {
		var blob itemBlob
		if err := json.Unmarshal(payload.Props.ApolloState[k], &blob); err != nil {
			continue
		}
		if blob.Typename != typeCarouselItem && blob.Typename != typeMenuPageItem {
			continue
		}
		if c, ok := blob.candidate(menulens.SourceHydrationCache); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// broadBlobRe matches a marker, a name and an image URL appearing in that
// order within one span. It recovers pairs from blobs whose JSON failed to
// parse whole but whose substrings survived inlining.
var broadBlobRe = regexp.MustCompile(`(?s)"__typename"\s*:\s*"(?:StorePageCarouselItem|MenuPageItem)".*?"name"\s*:\s*"([^"]+)".*?"(?:imgUrl|imageUrl)"\s*:\s*"([^"]+)"`)

// ScanBroadRegex runs the marker-anchored recovery regex over the whole
// document.
func (p *Page) ScanBroadRegex() []menulens.ImageCandidate {
	return scanPairRegex(p.html, broadBlobRe, menulens.SourceBroadRegex)
}

// quickBlobRe matches any {"name": ..., "imageUrl": ...} shaped fragment
// without requiring a type marker.
var quickBlobRe = regexp.MustCompile(`\{\s*"name"\s*:\s*"([^"]+)"[^}]+?"imageUrl"\s*:\s*"([^"]+)"`)

// ScanQuickRegex runs the narrow untyped fragment regex over the whole
// document. Lowest-confidence blob-based source.
func (p *Page) ScanQuickRegex() []menulens.ImageCandidate {
	return scanPairRegex(p.html, quickBlobRe, menulens.SourceQuickRegex)
}

func scanPairRegex(text string, re *regexp.Regexp, source menulens.ImageSource) []menulens.ImageCandidate {
	var candidates []menulens.ImageCandidate
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		url := strings.TrimSpace(m[2])
		if name == "" || url == "" {
			continue
		}
		candidates = append(candidates, menulens.ImageCandidate{Name: name, URL: url, Source: source})
	}
	return candidates
}

// ScanImgAttributes pairs every image element's alt text with its source URL.
func (p *Page) ScanImgAttributes() []menulens.ImageCandidate {
	var candidates []menulens.ImageCandidate
	for _, img := range p.AltImages() {
		candidates = append(candidates, menulens.ImageCandidate{
			Name:   img.Alt,
			URL:    img.URL,
			Source: menulens.SourceImgAttribute,
		})
	}
	return candidates
}

// styleURLRe extracts the first http(s) URL from a CSS url(...) reference.
var styleURLRe = regexp.MustCompile(`url\(["']?(https?://[^)"']+)`)

// ScanInlineStyles pairs elements styled with a background image against
// their accessible label (aria-label, then title, then alt).
func (p *Page) ScanInlineStyles() []menulens.ImageCandidate {
	var candidates []menulens.ImageCandidate
	p.doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		m := styleURLRe.FindStringSubmatch(sel.AttrOr("style", ""))
		if m == nil {
			return
		}
		name := strings.TrimSpace(sel.AttrOr("aria-label", ""))
		if name == "" {
			name = strings.TrimSpace(sel.AttrOr("title", ""))
		}
		if name == "" {
			name = strings.TrimSpace(sel.AttrOr("alt", ""))
		}
		if name == "" {
			return
		}
		candidates = append(candidates, menulens.ImageCandidate{
			Name:   name,
			URL:    m[1],
			Source: menulens.SourceInlineStyle,
		})
	})
	return candidates
}
