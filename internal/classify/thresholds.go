// Package classify maps income and location onto peer-comparison tiers
// using location-keyed annual income thresholds.
package classify

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultKey is the table used when neither the subregion nor the
// country has threshold data.
const defaultKey = "DEFAULT"

// Thresholds holds the ascending annual-income upper bounds separating
// the five tiers. Boundaries[0] closes the low tier, Boundaries[3]
// closes upper_middle; anything above is high. Values are whole
// currency units, and each boundary is an inclusive upper bound.
type Thresholds struct {
	Boundaries []int64 `yaml:"boundaries"`
}

// Validate checks that the boundary list defines five tiers and is
// strictly increasing.
func (t Thresholds) Validate() error {
	if len(t.Boundaries) < 4 {
		return fmt.Errorf("thresholds: need at least 4 boundaries, got %d", len(t.Boundaries))
	}
	for i := 1; i < len(t.Boundaries); i++ {
		if t.Boundaries[i] <= t.Boundaries[i-1] {
			return fmt.Errorf("thresholds: boundaries not strictly increasing at index %d (%d <= %d)",
				i, t.Boundaries[i], t.Boundaries[i-1])
		}
	}
	return nil
}

// defaultTables maps location keys to threshold data. Subregion entries
// use "COUNTRY-SUBREGION" keys; bare country codes provide the
// country-level fallback. Boundaries follow the published
// two-thirds-to-double-median bracket convention.
var defaultTables = map[string]Thresholds{
	defaultKey: {Boundaries: []int64{40000, 64000, 96000, 128000}},
	"US":       {Boundaries: []int64{40500, 64800, 97200, 129600}},
	"US-CA":    {Boundaries: []int64{44935, 71896, 107844, 143792}},
	"US-MS":    {Boundaries: []int64{32500, 52000, 78000, 104000}},
	"US-NY":    {Boundaries: []int64{43500, 69600, 104400, 139200}},
	"US-TX":    {Boundaries: []int64{39000, 62400, 93600, 124800}},
}

// Table is the immutable threshold reference data, loaded once at
// process start.
type Table struct {
	tables map[string]Thresholds
}

// NewTable returns a Table backed by the built-in threshold data.
func NewTable() *Table {
	tables := make(map[string]Thresholds, len(defaultTables))
	for k, v := range defaultTables {
		tables[k] = v
	}
	return &Table{tables: tables}
}

// LoadOverrides merges per-location threshold overrides from a YAML
// file into the table. Invalid entries fail the whole load so that
// configuration errors surface at startup, not at classification time.
func (t *Table) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading thresholds file: %w", err)
	}

	var overrides map[string]Thresholds
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("parsing thresholds file: %w", err)
	}

	for key, th := range overrides {
		if err := th.Validate(); err != nil {
			return fmt.Errorf("thresholds entry %q: %w", key, err)
		}
	}
	for key, th := range overrides {
		t.tables[normalizeKey(key)] = th
	}
	return nil
}

// Lookup returns the thresholds for a location, falling back from
// subregion to country to the global default.
func (t *Table) Lookup(country, subregion string) Thresholds {
	country = normalizeKey(country)
	subregion = normalizeKey(subregion)

	if country != "" && subregion != "" {
		if th, ok := t.tables[country+"-"+subregion]; ok {
			return th
		}
	}
	if th, ok := t.tables[country]; ok {
		return th
	}
	return t.tables[defaultKey]
}

func normalizeKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
