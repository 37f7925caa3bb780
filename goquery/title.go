package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medsearch"
)

// titleSelectors are the structural locations tried in order. The first
// non-empty result longer than minTitleLength wins.
var titleSelectors = []string{"h1", ".drug-title", ".label-title", "title"}

// minTitleLength filters out fragments like "Home" that are not medication
// titles.
const minTitleLength = 5

// Ensure TitleExtractor implements medsearch.TitleExtractor at compile time.
var _ medsearch.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor extracts the medication title from a label page.
type TitleExtractor struct{}

// NewTitleExtractor creates a new TitleExtractor.
func NewTitleExtractor() *TitleExtractor {
	return &TitleExtractor{}
}

// ExtractTitle tries each structural location in order and returns the
// first acceptable title. If none qualifies, the raw document title element
// is used even when short. Attempts records selectors that matched an
// element whose text was rejected; selectors matching nothing are not
// recorded.
func (e *TitleExtractor) ExtractTitle(html string) medsearch.TitleResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return medsearch.TitleResult{}
	}

	var attempts []string
	for _, selector := range titleSelectors {
		elem := doc.Find(selector).First()
		if elem.Length() == 0 {
			continue
		}
		title := strings.TrimSpace(elem.Text())
		if title != "" && len(title) > minTitleLength {
			return medsearch.TitleResult{Title: title, Found: true, Attempts: attempts}
		}
		attempts = append(attempts, selector)
	}

	// Fallback: accept the document title even if short.
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return medsearch.TitleResult{Title: title, Found: true, Attempts: attempts}
	}

	return medsearch.TitleResult{Attempts: attempts}
}
