package medsearch

// Config holds the static classification configuration: the allergen list
// and the form keyword lists. It is fixed for the lifetime of a run.
type Config struct {
	Allergens          []string
	QualifyingForms    []string
	DisqualifyingForms []string
}

// DefaultConfig returns the built-in allergen and form keyword lists.
func DefaultConfig() Config {
	return Config{
		Allergens:          DefaultAllergens,
		QualifyingForms:    DefaultQualifyingForms,
		DisqualifyingForms: DefaultDisqualifyingForms,
	}
}
