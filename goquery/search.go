package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medsearch"
)

var (
	nextLinkText  = regexp.MustCompile(`(?i)next|>`)
	pageNumber    = regexp.MustCompile(`page=(\d+)`)
	pageParameter = regexp.MustCompile(`page=`)
	bareDigits    = regexp.MustCompile(`^\d+$`)
)

// Ensure SearchParser implements medsearch.SearchParser at compile time.
var _ medsearch.SearchParser = (*SearchParser)(nil)

// SearchParser extracts label candidates and pagination signals from
// DailyMed search-result pages.
type SearchParser struct{}

// NewSearchParser creates a new SearchParser.
func NewSearchParser() *SearchParser {
	return &SearchParser{}
}

// ExtractCandidates returns the normalized label candidates linked from the
// page. Label links point at lookup.cfm with a setid parameter; candidates
// are deduplicated by canonical URL within the page, in document order.
func (p *SearchParser) ExtractCandidates(html string, baseURL string) ([]medsearch.Candidate, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, medsearch.Errorf(medsearch.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, medsearch.Errorf(medsearch.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var candidates []medsearch.Candidate

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" {
			return
		}
		if !strings.Contains(href, "lookup.cfm") && !strings.Contains(href, "setid=") {
			return
		}

		candidate, ok := medsearch.NormalizeLabelURL(base, href)
		if !ok {
			return
		}
		if _, dup := seen[candidate.URL]; dup {
			return
		}
		seen[candidate.URL] = struct{}{}
		candidates = append(candidates, candidate)
	})

	return candidates, nil
}

// HasNextPage reports whether the page links to further results beyond
// currentPage. Three detection tiers run in fixed order and the first
// affirmative tier wins:
//
//  1. a "next"-labeled link whose parent is not marked disabled
//  2. a pagination link embedding a page number above currentPage
//  3. a page-parameter link with interactive text ("next", ">", or a bare
//     digit) that is not itself marked disabled
func (p *SearchParser) HasNextPage(html string, currentPage int) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	// Tier 1: explicit next link.
	var hasNext bool
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !nextLinkText.MatchString(strings.TrimSpace(sel.Text())) {
			return true
		}
		if !isDisabled(sel.Parent()) {
			hasNext = true
			return false
		}
		return true
	})
	if hasNext {
		return true
	}

	// Tier 2: a page-number link beyond the current page.
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		m := pageNumber.FindStringSubmatch(href)
		if m == nil {
			return true
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > currentPage {
			hasNext = true
			return false
		}
		return true
	})
	if hasNext {
		return true
	}

	// Tier 3: interactive text on any page-parameter link.
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		if !pageParameter.MatchString(href) {
			return true
		}
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if !strings.Contains(text, "next") && !strings.Contains(text, ">") && !bareDigits.MatchString(text) {
			return true
		}
		if !isDisabled(sel) {
			hasNext = true
			return false
		}
		return true
	})

	return hasNext
}

// isDisabled reports whether the element's class list marks it disabled.
func isDisabled(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	return strings.Contains(strings.ToLower(class), "disabled")
}
