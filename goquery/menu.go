package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"menulens"
)

// Linked-data shapes, decoded defensively field by field. Polymorphic fields
// stay raw until their shape is probed.
type ldRoot struct {
	Type    string          `json:"@type"`
	HasMenu json.RawMessage `json:"hasMenu"`
}

type ldMenu struct {
	HasMenuSection json.RawMessage `json:"hasMenuSection"`
}

type ldSection struct {
	Name        string   `json:"name"`
	HasMenuItem []ldItem `json:"hasMenuItem"`
}

type ldItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Offers      ldOffers `json:"offers"`
}

type ldOffers struct {
	Price json.RawMessage `json:"price"`
}

// ExtractMenu locates the linked-data script declaring the Restaurant catalog
// root with a menu attached, and returns its sections flattened to one level.
// Items with an empty trimmed name are dropped. Returns ENOTFOUND when no
// such block exists; that is the pipeline's one fatal condition.
func (p *Page) ExtractMenu() ([]menulens.MenuSection, error) {
	var menu *ldMenu
	p.doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var root ldRoot
		if err := json.Unmarshal([]byte(sel.Text()), &root); err != nil {
			return true
		}
		if root.Type != "Restaurant" || emptyValue(root.HasMenu) {
			return true
		}
		var m ldMenu
		if err := json.Unmarshal(root.HasMenu, &m); err != nil {
			return true
		}
		menu = &m
		return false
	})
	if menu == nil {
		return nil, menulens.Errorf(menulens.ENOTFOUND, "structured menu data not found in snapshot")
	}

	sections := flattenSections(menu.HasMenuSection)

	out := make([]menulens.MenuSection, 0, len(sections))
	for _, sec := range sections {
		ms := menulens.MenuSection{Name: strings.TrimSpace(sec.Name)}
		for _, item := range sec.HasMenuItem {
			name := strings.TrimSpace(item.Name)
			if name == "" {
				continue
			}
			ms.Items = append(ms.Items, menulens.MenuItem{
				Name:        name,
				Description: strings.TrimSpace(item.Description),
				RawPrice:    rawPrice(item.Offers.Price),
			})
		}
		out = append(out, ms)
	}
	return out, nil
}

// flattenSections decodes the section list, un-nesting exactly one level when
// elements are themselves arrays (the observed double-nesting). Deeper
// nesting is not handled; see the package documentation for the rationale.
func flattenSections(raw json.RawMessage) []ldSection {
	if emptyValue(raw) {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		// A single section object rather than a list.
		var sec ldSection
		if err := json.Unmarshal(raw, &sec); err != nil {
			return nil
		}
		return []ldSection{sec}
	}

	var sections []ldSection
	for _, el := range elements {
		var nested []ldSection
		if err := json.Unmarshal(el, &nested); err == nil {
			sections = append(sections, nested...)
			continue
		}
		var sec ldSection
		if err := json.Unmarshal(el, &sec); err == nil {
			sections = append(sections, sec)
		}
	}
	return sections
}

// rawPrice renders a linked-data price value as the raw string fed to price
// normalization. Absent prices default to "0".
func rawPrice(raw json.RawMessage) string {
	if emptyValue(raw) {
		return "0"
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// emptyValue reports whether a raw JSON value is absent or vacuously empty.
func emptyValue(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "{}", "[]", `""`:
		return true
	}
	return false
}
