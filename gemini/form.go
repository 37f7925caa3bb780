// Package gemini provides AI-backed implementations of the medsearch form
// analyzer and ingredient extractor using Google Gemini. Both degrade to a
// deterministic fallback when the call fails or the response cannot be
// parsed; service unavailability never fails the pipeline.
package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/medsearch"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure FormAnalyzer implements medsearch.FormAnalyzer at compile time.
var _ medsearch.FormAnalyzer = (*FormAnalyzer)(nil)

// FormAnalyzer classifies dosage forms by asking Gemini about the label
// title. Any failure falls back to the configured deterministic analyzer.
type FormAnalyzer struct {
	client   *genai.Client
	fallback medsearch.FormAnalyzer
}

// NewFormAnalyzer creates a new FormAnalyzer. The fallback is consulted
// whenever the model call fails or returns an unusable answer.
func NewFormAnalyzer(client *genai.Client, fallback medsearch.FormAnalyzer) *FormAnalyzer {
	return &FormAnalyzer{client: client, fallback: fallback}
}

// AnalyzeForm asks the model to classify the title's dosage form.
func (a *FormAnalyzer) AnalyzeForm(ctx context.Context, title string) (medsearch.FormAnalysis, error) {
	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildFormPrompt(title)}},
		}},
		BuildFormConfig(),
	)
	if err != nil || result == nil {
		return a.fallback.AnalyzeForm(ctx, title)
	}

	analysis, ok := ParseFormAnalysis(result.Text())
	if !ok {
		return a.fallback.AnalyzeForm(ctx, title)
	}
	return analysis, nil
}

// BuildFormConfig returns the GenerateContentConfig for form analysis calls.
func BuildFormConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a medical information analyzer. Respond only with valid JSON.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 150,
	}
}

// BuildFormPrompt builds the user prompt for classifying a label title.
func BuildFormPrompt(title string) string {
	return fmt.Sprintf(`Analyze this medication name and determine if it's a capsule, liquid, or other oral form suitable for swallowing.

Medication name: %q

Respond with ONLY a JSON object in this exact format:
{"form_type": "capsule|liquid|tablet|other_oral|disqualify", "confidence": "high|medium|low", "reasoning": "brief explanation"}

Qualifying forms: capsule, liquid, tablet, oral suspension, oral solution, syrup, chewable tablet
Disqualifying forms: cream, ointment, injection, topical, gel, lotion, spray, patch, eye drops, ear drops, nasal spray

If uncertain, choose "disqualify" to be safe.`, title)
}

// validFormTypes is the closed set the model is allowed to answer with.
var validFormTypes = map[medsearch.FormType]struct{}{
	medsearch.FormCapsule:    {},
	medsearch.FormLiquid:     {},
	medsearch.FormTablet:     {},
	medsearch.FormOtherOral:  {},
	medsearch.FormDisqualify: {},
}

// ParseFormAnalysis carves a JSON object out of the model response and
// validates it against the closed form-type set. A structurally valid
// answer with an out-of-set form type is treated as malformed.
func ParseFormAnalysis(text string) (medsearch.FormAnalysis, bool) {
	span, ok := extractJSONObject(text)
	if !ok {
		return medsearch.FormAnalysis{}, false
	}

	var analysis medsearch.FormAnalysis
	if !decodeJSON(span, &analysis) {
		return medsearch.FormAnalysis{}, false
	}
	if _, valid := validFormTypes[analysis.FormType]; !valid {
		return medsearch.FormAnalysis{}, false
	}
	return analysis, true
}
