package medsearch

import (
	"context"
	"strings"
)

// Default form keyword lists. The disqualifying scan runs before the
// qualifying scan, so a title matching both is always disqualified.
var (
	// DefaultQualifyingForms are oral forms suitable for swallowing.
	DefaultQualifyingForms = []string{
		"capsule", "liquid", "tablet", "oral", "suspension", "solution", "syrup",
	}

	// DefaultDisqualifyingForms are topical, injectable, and spray forms.
	DefaultDisqualifyingForms = []string{
		"cream", "ointment", "injection", "topical", "gel", "lotion", "spray", "patch",
	}
)

// Ensure KeywordFormAnalyzer implements FormAnalyzer at compile time.
var _ FormAnalyzer = (*KeywordFormAnalyzer)(nil)

// KeywordFormAnalyzer classifies dosage forms by scanning the title for
// known form keywords. It is fully deterministic and never fails; it serves
// both as the standalone analyzer when no AI credential is configured and
// as the fallback behind the AI-backed analyzer.
type KeywordFormAnalyzer struct {
	// Qualifying and Disqualifying override the default keyword lists when
	// non-nil.
	Qualifying    []string
	Disqualifying []string
}

// AnalyzeForm scans the case-folded title against the disqualifying list
// first, then the qualifying list. The first qualifying match becomes the
// form type; no match yields FormUnknown.
func (a *KeywordFormAnalyzer) AnalyzeForm(_ context.Context, title string) (FormAnalysis, error) {
	lower := strings.ToLower(title)

	for _, form := range a.disqualifying() {
		if strings.Contains(lower, form) {
			return FormAnalysis{
				FormType:   FormDisqualify,
				Confidence: "high",
				Reasoning:  "contains '" + form + "' in name",
			}, nil
		}
	}

	for _, form := range a.qualifying() {
		if strings.Contains(lower, form) {
			return FormAnalysis{
				FormType:   FormType(form),
				Confidence: "high",
				Reasoning:  "contains '" + form + "' in name",
			}, nil
		}
	}

	return FormAnalysis{
		FormType:   FormUnknown,
		Confidence: "low",
		Reasoning:  "could not determine form type",
	}, nil
}

func (a *KeywordFormAnalyzer) qualifying() []string {
	if a.Qualifying != nil {
		return a.Qualifying
	}
	return DefaultQualifyingForms
}

func (a *KeywordFormAnalyzer) disqualifying() []string {
	if a.Disqualifying != nil {
		return a.Disqualifying
	}
	return DefaultDisqualifyingForms
}
