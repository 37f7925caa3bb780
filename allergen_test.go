package medsearch_test

import (
	"testing"

	"github.com/fwojciec/medsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIngredient_strips_special_characters(t *testing.T) {
	t.Parallel()

	got, ok := medsearch.NormalizeIngredient("  Lactose Monohydrate* ")
	require.True(t, ok)
	assert.Equal(t, "lactose monohydrate", got)
}

func TestNormalizeIngredient_keeps_hyphens(t *testing.T) {
	t.Parallel()

	got, ok := medsearch.NormalizeIngredient("D&C Red-27")
	require.True(t, ok)
	assert.Equal(t, "dc red-27", got)
}

func TestNormalizeIngredient_rejects_short_and_numeric_tokens(t *testing.T) {
	t.Parallel()

	_, ok := medsearch.NormalizeIngredient("ab")
	assert.False(t, ok)

	_, ok = medsearch.NormalizeIngredient("12345")
	assert.False(t, ok)

	_, ok = medsearch.NormalizeIngredient("  ,; ")
	assert.False(t, ok)
}

func TestCleanIngredients_deduplicates(t *testing.T) {
	t.Parallel()

	got := medsearch.CleanIngredients([]string{
		"Magnesium Stearate",
		"magnesium stearate",
		"titanium dioxide",
	})
	assert.Equal(t, []string{"magnesium stearate", "titanium dioxide"}, got)
}

func TestMatchAllergen_is_case_insensitive(t *testing.T) {
	t.Parallel()

	allergen, found := medsearch.MatchAllergen(
		[]string{"LACTOSE MONOHYDRATE"},
		medsearch.DefaultAllergens,
	)
	require.True(t, found)
	assert.Equal(t, "lactose", allergen)
}

func TestMatchAllergen_matches_substring_of_ingredient_word(t *testing.T) {
	t.Parallel()

	// Substring containment is accepted behavior: "corn" matches inside
	// "cornstarch derivative".
	allergen, found := medsearch.MatchAllergen(
		[]string{"cornstarch derivative"},
		medsearch.DefaultAllergens,
	)
	require.True(t, found)
	assert.Equal(t, "corn", allergen)
}

func TestMatchAllergen_returns_first_configured_match(t *testing.T) {
	t.Parallel()

	// Both "corn" and "dextrose" are present; "corn" precedes "dextrose"
	// in the configured list.
	allergen, found := medsearch.MatchAllergen(
		[]string{"dextrose", "corn syrup solids"},
		medsearch.DefaultAllergens,
	)
	require.True(t, found)
	assert.Equal(t, "corn", allergen)
}

func TestMatchAllergen_detects_allergen_across_joined_entries(t *testing.T) {
	t.Parallel()

	// The check runs over the space-joined blob, so a token is found no
	// matter which entry carries it.
	allergen, found := medsearch.MatchAllergen(
		[]string{"microcrystalline cellulose", "whey protein isolate", "povidone"},
		medsearch.DefaultAllergens,
	)
	require.True(t, found)
	assert.Equal(t, "whey", allergen)
}

func TestMatchAllergen_none_for_clean_list(t *testing.T) {
	t.Parallel()

	_, found := medsearch.MatchAllergen(
		[]string{"microcrystalline cellulose", "magnesium stearate"},
		medsearch.DefaultAllergens,
	)
	assert.False(t, found)
}

func TestMatchAllergen_empty_ingredient_list_never_matches(t *testing.T) {
	t.Parallel()

	_, found := medsearch.MatchAllergen(nil, medsearch.DefaultAllergens)
	assert.False(t, found)
}
