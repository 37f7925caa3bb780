package medsearch

import (
	"regexp"
	"strings"
)

// DefaultAllergens is the allergen list checked against inactive
// ingredients when no configuration file overrides it.
var DefaultAllergens = []string{
	"eggs",
	"corn",
	"cornstarch",
	"dextrose",
	"lactose",
	"whey",
	"wheat",
}

var (
	nonIngredientChars = regexp.MustCompile(`[^\w\s-]`)
	allDigits          = regexp.MustCompile(`^\d+$`)
)

// NormalizeIngredient cleans one extracted ingredient string: strips
// characters outside the word/space/hyphen class, trims whitespace, and
// lower-cases. Returns false for tokens that are empty, two characters or
// shorter, or purely numeric after cleaning.
func NormalizeIngredient(raw string) (string, bool) {
	s := nonIngredientChars.ReplaceAllString(raw, "")
	s = strings.TrimSpace(s)
	if len(s) <= 2 || allDigits.MatchString(s) {
		return "", false
	}
	return strings.ToLower(s), true
}

// CleanIngredients normalizes and deduplicates a list of extracted
// ingredient strings. First-seen order is preserved, though the result is
// semantically a set.
func CleanIngredients(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	var out []string
	for _, r := range raw {
		ing, ok := NormalizeIngredient(r)
		if !ok {
			continue
		}
		if _, dup := seen[ing]; dup {
			continue
		}
		seen[ing] = struct{}{}
		out = append(out, ing)
	}
	return out
}

// MatchAllergen joins the ingredient list into one lower-cased blob and
// tests each allergen for substring containment, in the order allergens are
// configured. Returns the first matching allergen.
//
// Substring containment is deliberate: an allergen token embedded in an
// unrelated ingredient word matches. Callers wanting word-boundary
// semantics must pre-filter the allergen list.
func MatchAllergen(ingredients []string, allergens []string) (string, bool) {
	blob := strings.ToLower(strings.Join(ingredients, " "))
	for _, allergen := range allergens {
		if allergen == "" {
			continue
		}
		if strings.Contains(blob, strings.ToLower(allergen)) {
			return allergen, true
		}
	}
	return "", false
}
