// Package yaml loads classification configuration from YAML files.
package yaml

import (
	"os"

	"github.com/fwojciec/medsearch"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the on-disk config layout. Every field is optional;
// omitted lists fall back to the built-in defaults.
type fileConfig struct {
	Allergens          []string `yaml:"allergens"`
	QualifyingForms    []string `yaml:"qualifying_forms"`
	DisqualifyingForms []string `yaml:"disqualifying_forms"`
}

// LoadConfig loads classification configuration from a YAML file, filling
// omitted fields from medsearch.DefaultConfig. A missing file is not an
// error; the defaults are returned unchanged. A file that exists but
// cannot be parsed is an error.
func LoadConfig(path string) (medsearch.Config, error) {
	cfg := medsearch.DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, medsearch.Errorf(medsearch.EINTERNAL, "read config file: %v", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, medsearch.Errorf(medsearch.EINVALID, "parse config file: %v", err)
	}

	if len(fc.Allergens) > 0 {
		cfg.Allergens = fc.Allergens
	}
	if len(fc.QualifyingForms) > 0 {
		cfg.QualifyingForms = fc.QualifyingForms
	}
	if len(fc.DisqualifyingForms) > 0 {
		cfg.DisqualifyingForms = fc.DisqualifyingForms
	}

	return cfg, nil
}
