package medsearch_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/medsearch"
	"github.com/stretchr/testify/assert"
)

func TestFormatResults_empty_list(t *testing.T) {
	t.Parallel()

	got := medsearch.FormatResults("ibuprofen", nil)

	assert.Contains(t, got, "Search Results for: ibuprofen")
	assert.Contains(t, got, "No qualified medications found.")
	assert.NotContains(t, got, "1.")
	assert.NotContains(t, got, "Total:")
}

func TestFormatResults_numbered_entries_in_discovery_order(t *testing.T) {
	t.Parallel()

	results := []*medsearch.Verdict{
		{
			Qualified: true,
			Title:     "Zeta Drug 10mg Capsules",
			URL:       "https://dailymed.nlm.nih.gov/dailymed/lookup.cfm?setid=zzz",
			FormType:  medsearch.FormCapsule,
		},
		{
			Qualified: true,
			Title:     "Alpha Drug Oral Suspension",
			URL:       "https://dailymed.nlm.nih.gov/dailymed/lookup.cfm?setid=aaa",
			FormType:  medsearch.FormType("suspension"),
		},
	}

	got := medsearch.FormatResults("test", results)

	// Never re-sorted: Zeta was discovered first and stays first.
	zeta := strings.Index(got, "1. Zeta Drug 10mg Capsules")
	alpha := strings.Index(got, "2. Alpha Drug Oral Suspension")
	assert.GreaterOrEqual(t, zeta, 0)
	assert.Greater(t, alpha, zeta)

	assert.Contains(t, got, "   https://dailymed.nlm.nih.gov/dailymed/lookup.cfm?setid=zzz")
	assert.Contains(t, got, "   Form: Capsule")
	assert.Contains(t, got, "   Form: Suspension")
	assert.Contains(t, got, "Total: 2 qualified result(s)")
}

func TestFormatResults_omits_form_line_when_absent(t *testing.T) {
	t.Parallel()

	results := []*medsearch.Verdict{
		{Qualified: true, Title: "Some Drug", URL: "https://example.com/?setid=1"},
	}

	got := medsearch.FormatResults("test", results)
	assert.NotContains(t, got, "Form:")
}

func TestVerdict_Validate_enforces_reason_invariant(t *testing.T) {
	t.Parallel()

	v := &medsearch.Verdict{URL: "https://example.com/?setid=1", Qualified: true}
	assert.NoError(t, v.Validate())

	v = &medsearch.Verdict{URL: "https://example.com/?setid=1", Qualified: true, Reason: medsearch.ReasonTitleNotFound}
	assert.Error(t, v.Validate())

	v = &medsearch.Verdict{URL: "https://example.com/?setid=1", Qualified: false}
	assert.Error(t, v.Validate())

	v = &medsearch.Verdict{URL: "https://example.com/?setid=1", Qualified: false, Reason: medsearch.AllergenReason("lactose")}
	assert.NoError(t, v.Validate())
	assert.Equal(t, medsearch.Reason("allergen_found_lactose"), v.Reason)
}
