// Package extract orchestrates the menulens pipeline: it runs the image
// candidate scanners in precedence order, builds the first-writer-wins image
// lookup, extracts the structured menu, and fills remaining image gaps with
// the fallback resolver. One Pipeline value is safe for concurrent use; all
// per-snapshot state is local to a single Extract call.
package extract

import (
	"log/slog"

	"menulens"
	"menulens/goquery"
)

// Ensure Pipeline implements menulens.Extractor at compile time.
var _ menulens.Extractor = (*Pipeline)(nil)

// Pipeline extracts catalog records from one rendered HTML snapshot.
// The zero value is ready to use.
type Pipeline struct {
	// Logger receives non-fatal diagnostics (degraded sources, per-scanner
	// contribution counts). Nil discards them.
	Logger *slog.Logger
}

// Extract runs the full pipeline over one snapshot.
//
// The only error conditions are an unparseable snapshot and an absent
// structured menu block (ENOTFOUND); every other defect degrades to fewer
// image candidates or an empty image field.
func (p *Pipeline) Extract(html string) (*menulens.ExtractResult, error) {
	page, err := goquery.NewPage(html)
	if err != nil {
		return nil, err
	}

	sections, err := page.ExtractMenu()
	if err != nil {
		return nil, err
	}

	lookup := p.buildLookup(page)

	var records []menulens.Record
	var stats menulens.ExtractStats
	stats.LookupEntries = lookup.Len()

	for _, sec := range sections {
		for _, item := range sec.Items {
			r := menulens.Record{
				Category:    sec.Name,
				Name:        item.Name,
				Description: item.Description,
				Price:       menulens.NormalizePrice(item.RawPrice),
				ImageURL:    lookup.Get(item.Name),
			}
			if r.ImageURL != "" {
				stats.ResolvedFromLookup++
			}
			records = append(records, r)
		}
	}

	stats.ResolvedByAltText = resolveByAltText(page, records)
	stats.ResolvedByFilename = resolveByFilename(page, records)

	p.logger().Debug("extract stats",
		"records", len(records),
		"lookup_entries", stats.LookupEntries,
		"resolved_lookup", stats.ResolvedFromLookup,
		"resolved_alt", stats.ResolvedByAltText,
		"resolved_filename", stats.ResolvedByFilename,
		"unresolved", stats.Unresolved(len(records)),
	)

	return &menulens.ExtractResult{
		Records:      records,
		SnapshotHash: Hash(html),
		Stats:        stats,
	}, nil
}

// buildLookup runs the scanners in fixed precedence order and merges their
// candidates first-writer-wins. Candidate URLs are canonicalized on
// insertion; candidates whose URL does not canonicalize are discarded.
func (p *Pipeline) buildLookup(page *goquery.Page) *menulens.ImageLookup {
	log := p.logger()
	lookup := menulens.NewImageLookup()

	add := func(source menulens.ImageSource, candidates []menulens.ImageCandidate) {
		added := 0
		for _, c := range candidates {
			url := menulens.CleanImageURL(c.URL)
			if url == "" {
				continue
			}
			if lookup.SetDefault(c.Name, url) {
				added++
			}
		}
		log.Debug("image scan",
			"source", source.String(),
			"candidates", len(candidates),
			"added", added,
		)
	}

	add(menulens.SourceGraphQLBlob, page.ScanGraphQLBlobs())

	hydration, err := page.ScanHydrationCache()
	if err != nil {
		log.Warn("image source degraded",
			"source", menulens.SourceHydrationCache.String(),
			"err", err,
		)
	}
	add(menulens.SourceHydrationCache, hydration)

	add(menulens.SourceBroadRegex, page.ScanBroadRegex())
	add(menulens.SourceQuickRegex, page.ScanQuickRegex())
	add(menulens.SourceImgAttribute, page.ScanImgAttributes())
	add(menulens.SourceInlineStyle, page.ScanInlineStyles())

	return lookup
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.New(slog.DiscardHandler)
}
