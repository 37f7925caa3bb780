package goquery

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/medsearch"
)

var (
	ingredientHeading = regexp.MustCompile(`(?i)inactive\s+(ingredients?|components?)`)
	headingWithList   = regexp.MustCompile(`(?i)inactive\s+(?:ingredients?|components?):?\s*(.+)`)
	headingPrefix     = regexp.MustCompile(`(?i)^inactive\s+(?:ingredients?|components?):?\s*`)
	collapsiblePrefix = regexp.MustCompile(`(?i)^.*?inactive.*?:?\s*`)
	ingredientDelim   = regexp.MustCompile(`[,;•\n\r]+`)
	uniiAnnotation    = regexp.MustCompile(`(?i)\(?\s*UNII:?\s*[A-Z0-9]+\s*\)?`)
	collapsibleClass  = regexp.MustCompile(`(?i)collapse|expand|accordion|dropdown`)
)

// Ensure IngredientExtractor implements medsearch.IngredientExtractor at
// compile time.
var _ medsearch.IngredientExtractor = (*IngredientExtractor)(nil)

// IngredientExtractor extracts inactive-ingredient lists from label pages
// using a layered strategy chain. Each layer is tried in order and the
// first layer that yields ingredients wins:
//
//  1. ingredient tables
//  2. headings followed by sibling/child content
//  3. collapsible/accordion sections
//  4. list items under an ingredient heading
//
// An empty result means no layer matched; that is a normal outcome.
type IngredientExtractor struct{}

// NewIngredientExtractor creates a new IngredientExtractor.
func NewIngredientExtractor() *IngredientExtractor {
	return &IngredientExtractor{}
}

// ExtractIngredients runs the strategy layers against the page.
func (e *IngredientExtractor) ExtractIngredients(_ context.Context, html string) (medsearch.IngredientResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return medsearch.IngredientResult{}, nil
	}

	if ingredients := fromTables(doc); len(ingredients) > 0 {
		return medsearch.IngredientResult{Ingredients: ingredients, Strategy: "table"}, nil
	}
	if ingredients := fromHeading(doc); len(ingredients) > 0 {
		return medsearch.IngredientResult{Ingredients: ingredients, Strategy: "heading"}, nil
	}
	if ingredients := fromCollapsible(doc); len(ingredients) > 0 {
		return medsearch.IngredientResult{Ingredients: ingredients, Strategy: "collapsible"}, nil
	}
	if ingredients := fromListItems(doc); len(ingredients) > 0 {
		return medsearch.IngredientResult{Ingredients: ingredients, Strategy: "list-item"}, nil
	}

	return medsearch.IngredientResult{}, nil
}

// fromTables scans ingredient tables. DailyMed renders inactive ingredients
// as rows with the name in a bold cell and a UNII code annotation.
func fromTables(doc *goquery.Document) []string {
	var raw []string

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if !ingredientHeading.MatchString(table.Text()) {
			return
		}

		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			// Header rows carry th cells.
			if row.Find("th").Length() > 0 {
				return
			}

			name := row.Find("b, strong").First()
			if name.Length() == 0 {
				name = row.Find("td").First()
			}
			if name.Length() == 0 {
				return
			}

			text := uniiAnnotation.ReplaceAllString(name.Text(), "")
			text = strings.TrimSpace(text)
			if text == "" || ingredientHeading.MatchString(text) {
				return
			}
			raw = append(raw, text)
		})
	})

	return medsearch.CleanIngredients(raw)
}

// fromHeading locates the first element whose text matches the ingredient
// heading and harvests the heading's container: following siblings (bounded
// to the first few), descendant list/paragraph/span elements, and the
// heading text itself when it carries an inline comma-separated list.
func fromHeading(doc *goquery.Document) []string {
	var raw []string

	doc.Find("h1, h2, h3, h4, h5, h6, strong, b, span, div, p").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		text := strings.TrimSpace(elem.Text())
		if !ingredientHeading.MatchString(text) {
			return true
		}

		if container := elem.Parent(); container.Length() > 0 {
			siblings := container.NextAll().Filter("div, section, p, ul, ol, span")
			siblings.Slice(0, min(siblings.Length(), 3)).Each(func(_ int, sibling *goquery.Selection) {
				siblingText := strings.TrimSpace(sibling.Text())
				if len(siblingText) > 10 {
					raw = append(raw, splitIngredientText(siblingText, headingPrefix)...)
				}
			})

			container.Find("li, p, span, div").Each(func(_ int, child *goquery.Selection) {
				childText := strings.TrimSpace(child.Text())
				if len(childText) > 2 {
					raw = append(raw, splitIngredientText(childText, headingPrefix)...)
				}
			})
		}

		// The heading element itself may carry the inline list after a colon.
		if strings.ContainsAny(text, ",;") {
			if m := headingWithList.FindStringSubmatch(text); m != nil {
				raw = append(raw, splitIngredientText(m[1], nil)...)
			}
		}

		return false // first matching heading only
	})

	return medsearch.CleanIngredients(raw)
}

// fromCollapsible scans collapsible/accordion/dropdown containers whose
// text mentions inactive ingredients.
func fromCollapsible(doc *goquery.Document) []string {
	var raw []string

	doc.Find("div, section").Each(func(_ int, elem *goquery.Selection) {
		class, ok := elem.Attr("class")
		if !ok || !collapsibleClass.MatchString(class) {
			return
		}
		text := elem.Text()
		if !ingredientHeading.MatchString(text) {
			return
		}
		raw = append(raw, splitIngredientText(text, collapsiblePrefix)...)
	})

	return medsearch.CleanIngredients(raw)
}

// fromListItems takes any list item verbatim when its parent's text matches
// the ingredient heading.
func fromListItems(doc *goquery.Document) []string {
	var raw []string

	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		parent := li.Parent()
		if parent.Length() == 0 || !ingredientHeading.MatchString(parent.Text()) {
			return
		}
		if text := strings.TrimSpace(li.Text()); text != "" {
			raw = append(raw, text)
		}
	})

	return medsearch.CleanIngredients(raw)
}

// splitIngredientText splits harvested text on list delimiters, optionally
// stripping a heading prefix from each part.
func splitIngredientText(text string, prefix *regexp.Regexp) []string {
	var out []string
	for _, part := range ingredientDelim.Split(text, -1) {
		part = strings.TrimSpace(part)
		if prefix != nil {
			part = prefix.ReplaceAllString(part, "")
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IngredientExcerpt returns a bounded HTML excerpt for AI extraction,
// prioritizing the matched ingredient section when one exists and falling
// back to a prefix of the full document.
func IngredientExcerpt(html string, limit int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return clamp(html, limit)
	}

	var section string
	doc.Find("div, section, span, p").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
		if !ingredientHeading.MatchString(elem.Text()) {
			return true
		}
		if h, err := goquery.OuterHtml(elem); err == nil {
			section = h
		}
		return false
	})

	if section == "" {
		doc.Find("div, section").EachWithBreak(func(_ int, elem *goquery.Selection) bool {
			class, ok := elem.Attr("class")
			if !ok || !collapsibleClass.MatchString(class) {
				return true
			}
			if !ingredientHeading.MatchString(elem.Text()) {
				return true
			}
			if h, err := goquery.OuterHtml(elem); err == nil {
				section = h
			}
			return false
		})
	}

	if section == "" {
		section = html
	}
	return clamp(section, limit)
}

func clamp(s string, limit int) string {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
