package medsearch

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReportRule is the separator line used in the rendered report.
const ReportRule = "============================================================"

// ReportWriter persists a rendered report for a query and returns the
// path it was written to.
type ReportWriter interface {
	WriteReport(query, content string) (path string, err error)
}

var titleCaser = cases.Title(language.English)

// FormatResults renders the qualified-result report for a query.
// Results are rendered in the order given (crawl discovery order, never
// re-sorted). An empty result list yields the "No qualified medications
// found." line and no numbered entries.
func FormatResults(query string, results []*Verdict) string {
	var out []string
	out = append(out, "Search Results for: "+query)
	out = append(out, ReportRule)
	out = append(out, "")
	out = append(out, "Qualified Medications (No Allergens, Capsule/Liquid Only):")
	out = append(out, "")

	if len(results) == 0 {
		out = append(out, "No qualified medications found.")
		out = append(out, "")
		return strings.Join(out, "\n")
	}

	for i, result := range results {
		out = append(out, fmt.Sprintf("%d. %s", i+1, result.Title))
		out = append(out, "   "+result.URL)
		if result.FormType != "" {
			out = append(out, "   Form: "+titleCaser.String(string(result.FormType)))
		}
		out = append(out, "")
	}

	out = append(out, fmt.Sprintf("Total: %d qualified result(s)", len(results)))
	out = append(out, "")

	return strings.Join(out, "\n")
}
