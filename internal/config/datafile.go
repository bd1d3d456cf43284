package config

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/Kathail/NorthScrape/internal/normalize"
)

// DataFile overrides the built-in discovery tables. Any empty section keeps
// its default.
type DataFile struct {
	Categories    []string          `yaml:"categories"`
	Localities    []string          `yaml:"localities"`
	PostalRegions map[string]string `yaml:"postal_regions"`
}

// LoadDataFile parses a YAML data file.
func LoadDataFile(path string) (*DataFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read data file %s", path)
	}

	var df DataFile
	if err := yaml.Unmarshal(raw, &df); err != nil {
		return nil, eris.Wrapf(err, "config: parse data file %s", path)
	}
	return &df, nil
}

// Apply merges the data file into cfg and returns the postal table to use.
// Postal overrides extend the default table; categories and localities
// replace theirs wholesale when non-empty.
func (df *DataFile) Apply(cfg *Config) normalize.PostalTable {
	if len(df.Categories) > 0 {
		cfg.Discover.Categories = df.Categories
	}
	if len(df.Localities) > 0 {
		cfg.Discover.Localities = sortedCopy(df.Localities)
	}

	if len(df.PostalRegions) == 0 {
		return normalize.DefaultPostalTable
	}
	table := make(normalize.PostalTable, len(normalize.DefaultPostalTable)+len(df.PostalRegions))
	for k, v := range normalize.DefaultPostalTable {
		table[k] = v
	}
	for k, v := range df.PostalRegions {
		table[k] = v
	}
	return table
}
