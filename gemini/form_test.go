package gemini_test

import (
	"testing"

	"github.com/fwojciec/medsearch"
	"github.com/fwojciec/medsearch/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFormPrompt_contains_title_and_contract(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildFormPrompt("Generic Drug 10mg Capsules")

	assert.Contains(t, prompt, `"Generic Drug 10mg Capsules"`)
	assert.Contains(t, prompt, `"form_type"`)
	assert.Contains(t, prompt, `choose "disqualify" to be safe`)
}

func TestBuildFormConfig(t *testing.T) {
	t.Parallel()

	config := gemini.BuildFormConfig()

	require.NotNil(t, config.SystemInstruction)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.1, float64(*config.Temperature), 0.001)
	assert.EqualValues(t, 150, config.MaxOutputTokens)
}

func TestParseFormAnalysis(t *testing.T) {
	t.Parallel()

	t.Run("pure JSON response", func(t *testing.T) {
		t.Parallel()

		analysis, ok := gemini.ParseFormAnalysis(`{"form_type": "capsule", "confidence": "high", "reasoning": "name says capsules"}`)
		require.True(t, ok)
		assert.Equal(t, medsearch.FormCapsule, analysis.FormType)
		assert.Equal(t, "high", analysis.Confidence)
	})

	t.Run("JSON wrapped in prose and code fences", func(t *testing.T) {
		t.Parallel()

		text := "Sure, here is the classification:\n```json\n" +
			`{"form_type": "disqualify", "confidence": "medium", "reasoning": "topical"}` +
			"\n```\nLet me know if you need more."

		analysis, ok := gemini.ParseFormAnalysis(text)
		require.True(t, ok)
		assert.Equal(t, medsearch.FormDisqualify, analysis.FormType)
	})

	t.Run("no JSON object", func(t *testing.T) {
		t.Parallel()

		_, ok := gemini.ParseFormAnalysis("I could not determine the form type.")
		assert.False(t, ok)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, ok := gemini.ParseFormAnalysis(`{"form_type": "capsule",`)
		assert.False(t, ok)
	})

	t.Run("out-of-set form type is treated as malformed", func(t *testing.T) {
		t.Parallel()

		_, ok := gemini.ParseFormAnalysis(`{"form_type": "suppository", "confidence": "high", "reasoning": "x"}`)
		assert.False(t, ok)
	})
}
