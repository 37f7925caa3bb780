package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/medsearch"
	"google.golang.org/genai"
)

const (
	// excerptLimit bounds the HTML excerpt taken from the page.
	excerptLimit = 10000

	// promptLimit bounds the excerpt actually embedded in the prompt.
	promptLimit = 5000
)

// ExcerptFunc produces a bounded HTML excerpt for the extraction prompt,
// prioritizing the inactive-ingredient section when one can be located.
type ExcerptFunc func(html string, limit int) string

// Ensure IngredientExtractor implements medsearch.IngredientExtractor at
// compile time.
var _ medsearch.IngredientExtractor = (*IngredientExtractor)(nil)

// IngredientExtractor extracts inactive ingredients by asking Gemini about
// an HTML excerpt of the label. The AI call is tried first; the configured
// structural extractor is the fallback for call or parse failure.
type IngredientExtractor struct {
	client   *genai.Client
	fallback medsearch.IngredientExtractor
	excerpt  ExcerptFunc
}

// NewIngredientExtractor creates a new IngredientExtractor.
func NewIngredientExtractor(client *genai.Client, fallback medsearch.IngredientExtractor, excerpt ExcerptFunc) *IngredientExtractor {
	if excerpt == nil {
		excerpt = func(html string, limit int) string {
			if limit > 0 && len(html) > limit {
				return html[:limit]
			}
			return html
		}
	}
	return &IngredientExtractor{client: client, fallback: fallback, excerpt: excerpt}
}

// ExtractIngredients asks the model for a JSON array of ingredient names.
func (e *IngredientExtractor) ExtractIngredients(ctx context.Context, html string) (medsearch.IngredientResult, error) {
	section := e.excerpt(html, excerptLimit)

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildIngredientsPrompt(section)}},
		}},
		BuildIngredientsConfig(),
	)
	if err != nil || result == nil {
		return e.fallback.ExtractIngredients(ctx, html)
	}

	ingredients, ok := ParseIngredients(result.Text())
	if !ok {
		return e.fallback.ExtractIngredients(ctx, html)
	}
	return medsearch.IngredientResult{Ingredients: ingredients, Strategy: "ai"}, nil
}

// BuildIngredientsConfig returns the GenerateContentConfig for ingredient
// extraction calls.
func BuildIngredientsConfig() *genai.GenerateContentConfig {
	temp := float32(0.1)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a medical label parser. Extract ingredient lists from HTML. Respond only with valid JSON array.",
			}},
		},
		Temperature:     &temp,
		MaxOutputTokens: 500,
	}
}

// BuildIngredientsPrompt builds the user prompt around the HTML excerpt.
func BuildIngredientsPrompt(section string) string {
	if len(section) > promptLimit {
		section = section[:promptLimit]
	}
	return fmt.Sprintf(`Extract the complete list of inactive ingredients from this medication label HTML.

Focus on finding the "Inactive ingredients" or "Inactive components" section. The ingredients are typically listed after this heading, possibly in a collapsible/dropdown section.

HTML excerpt:
%s

Respond with ONLY a JSON array of ingredient names in this exact format:
["ingredient1", "ingredient2", "ingredient3", ...]

If you cannot find inactive ingredients, return an empty array: []`, section)
}

// ParseIngredients carves a JSON array out of the model response and
// normalizes its entries. Non-string entries are dropped.
func ParseIngredients(text string) ([]string, bool) {
	span, ok := extractJSONArray(text)
	if !ok {
		return nil, false
	}

	var entries []any
	if !decodeJSON(span, &entries) {
		return nil, false
	}

	var raw []string
	for _, entry := range entries {
		if s, ok := entry.(string); ok {
			raw = append(raw, s)
		}
	}
	return medsearch.CleanIngredients(raw), true
}
