package medsearch

import "context"

// FormType classifies the dosage form of a medication, derived from its
// label title. Keyword-based analysis produces the matched keyword itself
// (e.g. "suspension"); AI-based analysis is constrained to the closed set
// below.
type FormType string

// Form types produced by AI analysis, plus the two terminal values.
// Any form type other than FormDisqualify and FormUnknown qualifies.
const (
	FormCapsule    FormType = "capsule"
	FormLiquid     FormType = "liquid"
	FormTablet     FormType = "tablet"
	FormOtherOral  FormType = "other_oral"
	FormDisqualify FormType = "disqualify"
	FormUnknown    FormType = "unknown"
)

// Qualifies reports whether the form type passes the form filter.
func (f FormType) Qualifies() bool {
	return f != FormDisqualify && f != FormUnknown && f != ""
}

// FormAnalysis is the outcome of analyzing a label title for its dosage form.
type FormAnalysis struct {
	FormType   FormType `json:"form_type"`
	Confidence string   `json:"confidence"` // "high", "medium", or "low"
	Reasoning  string   `json:"reasoning"`
}

// WarningResult is the outcome of the inactive-NDC warning check.
type WarningResult struct {
	// Found is true if the page carries an inactive-NDC warning.
	Found bool

	// Heuristic names the detection path that fired: "marker-class" for the
	// authoritative marker element, "styled-text" for the red-styled text
	// fallback. Empty when no warning was found.
	Heuristic string
}

// TitleResult is the outcome of title extraction.
type TitleResult struct {
	Title string
	Found bool

	// Attempts lists the structural locations tried, in order, before a
	// result was accepted. Retained for diagnostics only.
	Attempts []string
}

// IngredientResult is the outcome of inactive-ingredient extraction.
// An empty ingredient list is not an error; it is a defined absence.
type IngredientResult struct {
	// Ingredients holds normalized ingredient names. Order is not
	// significant; the set is deduplicated.
	Ingredients []string

	// Strategy names the extraction layer that produced the list:
	// "table", "heading", "collapsible", "list-item", or "ai".
	// Empty when nothing was extracted.
	Strategy string
}

// Disqualification reasons form a closed taxonomy. A verdict carries exactly
// one reason iff it is not qualified.
type Reason string

// Reasons with no parameter.
const (
	ReasonFetchFailed   Reason = "page_fetch_failed"
	ReasonInactiveNDC   Reason = "inactive_ndc_warning"
	ReasonTitleNotFound Reason = "title_not_found"
)

// FormReason returns the disqualification reason for a terminal form type
// (form_type_disqualify or form_type_unknown).
func FormReason(ft FormType) Reason {
	return Reason("form_type_" + string(ft))
}

// AllergenReason returns the disqualification reason for a matched allergen.
func AllergenReason(allergen string) Reason {
	return Reason("allergen_found_" + allergen)
}

// Verdict is the result of classifying one medication label page.
type Verdict struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Qualified bool   `json:"qualified"`

	// Reason is set iff Qualified is false.
	Reason Reason `json:"reason,omitempty"`

	Title       string   `json:"title,omitempty"`
	FormType    FormType `json:"formType,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`

	// ContentHash is a hash of the fetched label HTML, for diagnostics.
	ContentHash string `json:"contentHash,omitempty"`

	// Per-stage diagnostics, populated up to the stage where the pipeline
	// terminated. They never affect the qualification decision.
	WarningCheck    WarningResult    `json:"warningCheck"`
	TitleCheck      TitleResult      `json:"titleCheck"`
	FormCheck       FormAnalysis     `json:"formCheck"`
	IngredientCheck IngredientResult `json:"ingredientCheck"`
}

// Validate returns an error if the verdict violates the qualified/reason
// invariant.
func (v *Verdict) Validate() error {
	if v.URL == "" {
		return Errorf(EINVALID, "verdict URL required")
	}
	if v.Qualified && v.Reason != "" {
		return Errorf(EINVALID, "qualified verdict must not carry a reason")
	}
	if !v.Qualified && v.Reason == "" {
		return Errorf(EINVALID, "disqualified verdict must carry a reason")
	}
	return nil
}

// WarningDetector checks a label page for the inactive-NDC warning marker.
type WarningDetector interface {
	DetectWarning(html string) WarningResult
}

// TitleExtractor extracts the medication title from a label page.
type TitleExtractor interface {
	ExtractTitle(html string) TitleResult
}

// FormAnalyzer classifies a label title into a dosage form.
// Implementations must not fail the pipeline: an analyzer that depends on
// an external service degrades to deterministic analysis rather than
// returning an error for service unavailability.
type FormAnalyzer interface {
	AnalyzeForm(ctx context.Context, title string) (FormAnalysis, error)
}

// IngredientExtractor extracts the inactive-ingredient list from a label
// page. Absence of ingredients is a normal result, not an error.
type IngredientExtractor interface {
	ExtractIngredients(ctx context.Context, html string) (IngredientResult, error)
}
