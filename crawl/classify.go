// Package crawl provides the search crawl controller and the label-page
// classification pipeline. It coordinates paginated candidate discovery,
// per-page classification, and result aggregation.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/medsearch"
	"github.com/google/uuid"
)

// Classifier runs the five-step classification pipeline against one label
// page: fetch, warning check, title extraction, form analysis, ingredient
// extraction with allergen matching. The first disqualifying condition
// short-circuits the rest; every verdict retains the diagnostics of the
// stages it reached.
type Classifier struct {
	Fetcher     medsearch.Fetcher
	Warnings    medsearch.WarningDetector
	Titles      medsearch.TitleExtractor
	Forms       medsearch.FormAnalyzer
	Ingredients medsearch.IngredientExtractor
	Allergens   []string
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Classify fetches and classifies one candidate label page. It always
// returns a verdict; processing errors disqualify the candidate, they never
// propagate.
func (c *Classifier) Classify(ctx context.Context, candidate medsearch.Candidate) *medsearch.Verdict {
	verdict := &medsearch.Verdict{
		ID:  uuid.NewString(),
		URL: candidate.URL,
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	html, err := FetchWithRetryDelays(ctx, candidate.URL, c.Fetcher.Fetch, c.Logger, delays)
	if err != nil {
		verdict.Reason = medsearch.ReasonFetchFailed
		return verdict
	}
	verdict.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(html))

	verdict.WarningCheck = c.Warnings.DetectWarning(html)
	if verdict.WarningCheck.Found {
		verdict.Reason = medsearch.ReasonInactiveNDC
		return verdict
	}

	verdict.TitleCheck = c.Titles.ExtractTitle(html)
	if !verdict.TitleCheck.Found {
		verdict.Reason = medsearch.ReasonTitleNotFound
		return verdict
	}
	verdict.Title = verdict.TitleCheck.Title

	analysis, err := c.Forms.AnalyzeForm(ctx, verdict.Title)
	if err != nil {
		// Analyzers degrade internally; an error here means even the
		// deterministic path failed, which leaves the form unknown.
		analysis = medsearch.FormAnalysis{FormType: medsearch.FormUnknown, Confidence: "low"}
	}
	verdict.FormCheck = analysis
	if !analysis.FormType.Qualifies() {
		verdict.Reason = medsearch.FormReason(analysis.FormType)
		return verdict
	}
	verdict.FormType = analysis.FormType

	result, err := c.Ingredients.ExtractIngredients(ctx, html)
	if err != nil {
		result = medsearch.IngredientResult{}
	}
	verdict.IngredientCheck = result
	verdict.Ingredients = result.Ingredients

	if allergen, found := medsearch.MatchAllergen(result.Ingredients, c.Allergens); found {
		verdict.Reason = medsearch.AllergenReason(allergen)
		return verdict
	}

	verdict.Qualified = true
	return verdict
}
