// Package goquery provides DOM-backed implementations of the medsearch
// extraction strategies. All strategies parse the raw HTML with goquery and
// treat absence as a normal result, never as an error.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medsearch"
)

// inactiveNDCSelector matches the marker element DailyMed renders on labels
// whose product codes are no longer active. When present it is
// authoritative; the styled-text heuristic below is the fallback for pages
// that lack it.
const inactiveNDCSelector = ".inactive-ndc"

var inactiveNDCText = regexp.MustCompile(`(?i)inactive.*NDC`)

// Ensure WarningDetector implements medsearch.WarningDetector at compile time.
var _ medsearch.WarningDetector = (*WarningDetector)(nil)

// WarningDetector checks label pages for the inactive-NDC warning.
type WarningDetector struct{}

// NewWarningDetector creates a new WarningDetector.
func NewWarningDetector() *WarningDetector {
	return &WarningDetector{}
}

// DetectWarning reports whether the page carries an inactive-NDC warning.
// The authoritative marker class is checked first; failing that, any element
// whose own text mentions an inactive NDC counts if the element or its
// parent carries red/warning styling.
func (d *WarningDetector) DetectWarning(html string) medsearch.WarningResult {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return medsearch.WarningResult{}
	}

	if doc.Find(inactiveNDCSelector).Length() > 0 {
		return medsearch.WarningResult{Found: true, Heuristic: "marker-class"}
	}

	var found bool
	doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !inactiveNDCText.MatchString(ownText(sel)) {
			return true
		}
		if isWarningStyled(sel) || isWarningStyled(sel.Parent()) {
			found = true
			return false
		}
		return true
	})

	if found {
		return medsearch.WarningResult{Found: true, Heuristic: "styled-text"}
	}
	return medsearch.WarningResult{}
}

// ownText returns the text directly contained in the selection's element,
// excluding descendant elements.
func ownText(sel *goquery.Selection) string {
	return sel.Contents().FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "#text"
	}).Text()
}

// isWarningStyled reports whether the element's class or inline style
// indicates red/warning rendering.
func isWarningStyled(sel *goquery.Selection) bool {
	class, _ := sel.Attr("class")
	class = strings.ToLower(class)
	if strings.Contains(class, "red") ||
		strings.Contains(class, "warning") ||
		strings.Contains(class, "error") {
		return true
	}

	style, _ := sel.Attr("style")
	style = strings.ToLower(style)
	return strings.Contains(style, "red") || strings.Contains(style, "color:#")
}
