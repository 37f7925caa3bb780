package main

import (
	"errors"
	"fmt"

	"github.com/fwojciec/medsearch"
	"github.com/fwojciec/medsearch/crawl"
)

// ErrNoResults is returned when the crawl completes without a single
// qualified medication. It maps to a non-zero exit code.
var ErrNoResults = errors.New("no qualified medications found")

// Run executes the search: paginated candidate collection, per-label
// classification, and report rendering.
func (c *CLI) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Searching DailyMed for %q...\n", c.Query)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressSearchPage:
			fmt.Fprintf(deps.Stdout, "  page %d: %d new label(s)\n", event.Page, event.Found)
		case crawl.ProgressCollected:
			fmt.Fprintf(deps.Stdout, "Found %d unique label(s)\n", event.Total)
		case crawl.ProgressClassified:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s\n", event.Completed, event.Total, describeVerdict(event.Verdict))
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, c.Query, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medsearch.ErrorMessage(err))
		return err
	}

	report := medsearch.FormatResults(c.Query, result.Qualified)

	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, medsearch.ReportRule)
	fmt.Fprint(deps.Stdout, report)
	fmt.Fprintln(deps.Stdout, medsearch.ReportRule)

	path, err := deps.Reports.WriteReport(c.Query, report)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", medsearch.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Results saved to: %s\n", path)

	if len(result.Qualified) == 0 {
		return ErrNoResults
	}
	return nil
}

// describeVerdict renders a one-line progress summary for a classified label.
func describeVerdict(v *medsearch.Verdict) string {
	if v == nil {
		return ""
	}
	if v.Qualified {
		return fmt.Sprintf("qualified: %s", v.Title)
	}
	if v.Title != "" {
		return fmt.Sprintf("skipped %s (%s)", v.Title, v.Reason)
	}
	return fmt.Sprintf("skipped %s (%s)", v.URL, v.Reason)
}
