package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/medsearch"
	"github.com/fwojciec/medsearch/crawl"
	medgoquery "github.com/fwojciec/medsearch/goquery"
	"github.com/fwojciec/medsearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newClassifier wires a Classifier with the real DOM extraction strategies,
// the deterministic form analyzer, and a fetcher serving the given HTML.
func newClassifier(fetch func(ctx context.Context, url string) (string, error)) *crawl.Classifier {
	return &crawl.Classifier{
		Fetcher:     &mock.Fetcher{FetchFn: fetch},
		Warnings:    medgoquery.NewWarningDetector(),
		Titles:      medgoquery.NewTitleExtractor(),
		Forms:       &medsearch.KeywordFormAnalyzer{},
		Ingredients: medgoquery.NewIngredientExtractor(),
		Allergens:   medsearch.DefaultAllergens,
		RetryDelays: []time.Duration{},
	}
}

const labelCandidateURL = "https://dailymed.nlm.nih.gov/dailymed/lookup.cfm?setid=ABC123"

func labelCandidate() medsearch.Candidate {
	return medsearch.Candidate{SetID: "ABC123", URL: labelCandidateURL}
}

func TestClassifier_disqualifies_on_allergen_in_ingredient_table(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<h1>Generic Drug 10mg Capsules</h1>
	<table>
		<tr><th>Inactive Ingredients</th></tr>
		<tr><td><strong>lactose monohydrate</strong></td></tr>
	</table>
	</body></html>`

	c := newClassifier(func(_ context.Context, _ string) (string, error) { return html, nil })
	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.False(t, verdict.Qualified)
	assert.Equal(t, medsearch.Reason("allergen_found_lactose"), verdict.Reason)
	assert.Equal(t, "Generic Drug 10mg Capsules", verdict.Title)
	assert.Equal(t, medsearch.FormCapsule, verdict.FormCheck.FormType)
	assert.Contains(t, verdict.IngredientCheck.Ingredients, "lactose monohydrate")
	assert.NotEmpty(t, verdict.ID)
	assert.NotEmpty(t, verdict.ContentHash)
}

func TestClassifier_qualifies_clean_capsule_label(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<h1>Generic Drug 10mg Capsules</h1>
	<table>
		<tr><th>Inactive Ingredients</th></tr>
		<tr><td><strong>microcrystalline cellulose</strong></td></tr>
		<tr><td><strong>magnesium stearate</strong></td></tr>
	</table>
	</body></html>`

	c := newClassifier(func(_ context.Context, _ string) (string, error) { return html, nil })
	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.True(t, verdict.Qualified)
	assert.Empty(t, verdict.Reason)
	assert.Equal(t, medsearch.FormCapsule, verdict.FormType)
	assert.ElementsMatch(t,
		[]string{"microcrystalline cellulose", "magnesium stearate"},
		verdict.Ingredients,
	)
}

func TestClassifier_disqualifies_when_title_missing_entirely(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>bare paragraph</p></body></html>`

	c := newClassifier(func(_ context.Context, _ string) (string, error) { return html, nil })
	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.False(t, verdict.Qualified)
	assert.Equal(t, medsearch.ReasonTitleNotFound, verdict.Reason)
	assert.Empty(t, verdict.TitleCheck.Attempts)
	// Pipeline never reached the form stage.
	assert.Empty(t, verdict.FormCheck.FormType)
}

func TestClassifier_disqualifies_on_inactive_ndc_warning(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<div class="inactive-ndc">NDC codes inactive</div>
	<h1>Generic Drug 10mg Capsules</h1>
	</body></html>`

	c := newClassifier(func(_ context.Context, _ string) (string, error) { return html, nil })
	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.Equal(t, medsearch.ReasonInactiveNDC, verdict.Reason)
	assert.Equal(t, "marker-class", verdict.WarningCheck.Heuristic)
	// Short-circuited before title extraction.
	assert.Empty(t, verdict.Title)
}

func TestClassifier_disqualifies_on_fetch_failure(t *testing.T) {
	t.Parallel()

	c := newClassifier(func(_ context.Context, _ string) (string, error) {
		return "", errors.New("connection refused")
	})
	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.Equal(t, medsearch.ReasonFetchFailed, verdict.Reason)
	assert.Empty(t, verdict.ContentHash)
}

func TestClassifier_disqualifies_unknown_and_disqualified_forms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		title  string
		reason medsearch.Reason
	}{
		{"unknown form", "Mystery Product Alpha", "form_type_unknown"},
		{"topical form", "Hydrocortisone Cream 1%", "form_type_disqualify"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			html := "<html><body><h1>" + tt.title + "</h1></body></html>"
			c := newClassifier(func(_ context.Context, _ string) (string, error) { return html, nil })
			verdict := c.Classify(context.Background(), labelCandidate())

			require.NoError(t, verdict.Validate())
			assert.Equal(t, tt.reason, verdict.Reason)
		})
	}
}

func TestClassifier_qualifies_when_no_ingredients_found(t *testing.T) {
	t.Parallel()

	// Absence of an ingredient list is not a disqualifier; there is nothing
	// for the allergen check to match.
	html := `<html><body><h1>Plain Syrup Medication</h1></body></html>`

	c := newClassifier(func(_ context.Context, _ string) (string, error) { return html, nil })
	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.True(t, verdict.Qualified)
	assert.Empty(t, verdict.Ingredients)
}

func TestClassifier_skips_later_stages_after_form_disqualification(t *testing.T) {
	t.Parallel()

	ingredientsCalled := false
	c := &crawl.Classifier{
		Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
			return "<html></html>", nil
		}},
		Warnings: &mock.WarningDetector{DetectWarningFn: func(_ string) medsearch.WarningResult {
			return medsearch.WarningResult{}
		}},
		Titles: &mock.TitleExtractor{ExtractTitleFn: func(_ string) medsearch.TitleResult {
			return medsearch.TitleResult{Title: "Hydrocortisone Cream 1%", Found: true}
		}},
		Forms: &mock.FormAnalyzer{AnalyzeFormFn: func(_ context.Context, _ string) (medsearch.FormAnalysis, error) {
			return medsearch.FormAnalysis{FormType: medsearch.FormDisqualify, Confidence: "high"}, nil
		}},
		Ingredients: &mock.IngredientExtractor{ExtractIngredientsFn: func(_ context.Context, _ string) (medsearch.IngredientResult, error) {
			ingredientsCalled = true
			return medsearch.IngredientResult{}, nil
		}},
		RetryDelays: []time.Duration{},
	}

	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.Equal(t, medsearch.Reason("form_type_disqualify"), verdict.Reason)
	assert.False(t, ingredientsCalled)
}

func TestClassifier_falls_back_to_unknown_when_analyzer_errors(t *testing.T) {
	t.Parallel()

	c := &crawl.Classifier{
		Fetcher: &mock.Fetcher{FetchFn: func(_ context.Context, _ string) (string, error) {
			return "<html></html>", nil
		}},
		Warnings: &mock.WarningDetector{DetectWarningFn: func(_ string) medsearch.WarningResult {
			return medsearch.WarningResult{}
		}},
		Titles: &mock.TitleExtractor{ExtractTitleFn: func(_ string) medsearch.TitleResult {
			return medsearch.TitleResult{Title: "Mystery Product", Found: true}
		}},
		Forms: &mock.FormAnalyzer{AnalyzeFormFn: func(_ context.Context, _ string) (medsearch.FormAnalysis, error) {
			return medsearch.FormAnalysis{}, errors.New("boom")
		}},
		Ingredients: &mock.IngredientExtractor{ExtractIngredientsFn: func(_ context.Context, _ string) (medsearch.IngredientResult, error) {
			return medsearch.IngredientResult{}, nil
		}},
		RetryDelays: []time.Duration{},
	}

	verdict := c.Classify(context.Background(), labelCandidate())

	require.NoError(t, verdict.Validate())
	assert.Equal(t, medsearch.Reason("form_type_unknown"), verdict.Reason)
	assert.Equal(t, medsearch.FormUnknown, verdict.FormCheck.FormType)
}
