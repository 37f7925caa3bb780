package medsearch

import (
	"net/url"
	"strings"
)

// Candidate identifies one distinct medication label discovered in search
// results. The URL is the canonical form of the label link: scheme and host
// lower-cased, all query parameters except setid dropped.
type Candidate struct {
	// SetID is the label's record-set identifier.
	SetID string

	// URL is the canonical label page URL.
	URL string
}

// NormalizeLabelURL resolves href against base and reduces it to a canonical
// candidate keyed by its setid parameter. Two links referring to the same
// label normalize to the same candidate regardless of relative vs absolute
// form, extra query parameters, or scheme/host casing. Returns false if the
// href does not parse or carries no setid.
//
// Normalization is idempotent: normalizing an already-canonical URL is a
// no-op.
func NormalizeLabelURL(base *url.URL, href string) (Candidate, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return Candidate{}, false
	}

	resolved := ref
	if base != nil {
		resolved = base.ResolveReference(ref)
	}

	setID := resolved.Query().Get("setid")
	if setID == "" {
		return Candidate{}, false
	}

	canonical := url.URL{
		Scheme:   strings.ToLower(resolved.Scheme),
		Host:     strings.ToLower(resolved.Host),
		Path:     resolved.Path,
		RawQuery: "setid=" + url.QueryEscape(setID),
	}

	return Candidate{SetID: setID, URL: canonical.String()}, true
}

// SearchParser extracts candidate label links and pagination signals from
// one page of search results.
type SearchParser interface {
	// ExtractCandidates returns the normalized label candidates linked from
	// the page, deduplicated within the page, in document order.
	ExtractCandidates(html string, baseURL string) ([]Candidate, error)

	// HasNextPage reports whether the page links to a further page of
	// results beyond currentPage.
	HasNextPage(html string, currentPage int) bool
}
