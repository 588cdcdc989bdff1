package extract

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options control extraction behavior.
type Options struct {
	// CaseInsensitive folds phrase keys to lower case for index lookups.
	// Stored translation values are unaffected.
	CaseInsensitive bool `yaml:"case_insensitive" json:"case_insensitive"`
}

// DefaultOptions returns the standard extraction options: case-insensitive
// key matching.
func DefaultOptions() Options {
	return Options{CaseInsensitive: true}
}

// LoadOptions reads extraction options from a YAML file. Fields absent
// from the file keep their default values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading options file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing options YAML: %w", err)
	}
	return opts, nil
}

// key derives the index key for a normalized phrase, folding case when
// case-insensitive mode is enabled.
func (o Options) key(phrase string) string {
	if o.CaseInsensitive {
		return strings.ToLower(phrase)
	}
	return phrase
}
