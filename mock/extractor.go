package mock

import "menulens"

var _ menulens.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of menulens.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*menulens.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*menulens.ExtractResult, error) {
	return e.ExtractFn(html)
}
