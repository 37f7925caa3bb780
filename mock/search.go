package mock

import "github.com/fwojciec/medsearch"

var _ medsearch.SearchParser = (*SearchParser)(nil)

// SearchParser is a mock implementation of medsearch.SearchParser.
type SearchParser struct {
	ExtractCandidatesFn func(html string, baseURL string) ([]medsearch.Candidate, error)
	HasNextPageFn       func(html string, currentPage int) bool
}

func (p *SearchParser) ExtractCandidates(html string, baseURL string) ([]medsearch.Candidate, error) {
	return p.ExtractCandidatesFn(html, baseURL)
}

func (p *SearchParser) HasNextPage(html string, currentPage int) bool {
	return p.HasNextPageFn(html, currentPage)
}
