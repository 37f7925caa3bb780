// Package medsearch provides a CLI tool that searches the DailyMed drug-label
// database for medications matching a name query and filters them down to
// oral forms (capsules, tablets, liquids) free of a configured allergen list.
// It paginates through search results, classifies each distinct label page,
// and renders a plain-text report of the qualified medications.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, http/).
package medsearch
