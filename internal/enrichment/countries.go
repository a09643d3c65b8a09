// README: Embedded country table and the comma-segment country resolution heuristic.
package enrichment

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed countries.yaml
var countriesYAML []byte

type countryEntry struct {
	Name      string     `yaml:"name"`
	Aliases   []string   `yaml:"aliases"`
	Currency  string     `yaml:"currency"`
	Emergency *Emergency `yaml:"emergency"`
}

// CountryTable maps country names and aliases to currency codes and emergency numbers.
type CountryTable struct {
	byKey   map[string]*countryEntry
	byName  map[string]*countryEntry
	entries []countryEntry
}

// LoadCountryTable parses a YAML country table.
func LoadCountryTable(data []byte) (*CountryTable, error) {
	var doc struct {
		Countries []countryEntry `yaml:"countries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse country table: %w", err)
	}

	t := &CountryTable{
		byKey:   make(map[string]*countryEntry),
		byName:  make(map[string]*countryEntry),
		entries: doc.Countries,
	}
	for i := range t.entries {
		e := &t.entries[i]
		if e.Name == "" || e.Currency == "" {
			return nil, fmt.Errorf("country table entry %d: name and currency are required", i)
		}
		t.byName[e.Name] = e
		t.byKey[normalizeKey(e.Name)] = e
		for _, alias := range e.Aliases {
			t.byKey[normalizeKey(alias)] = e
		}
	}
	if _, ok := t.byName[DefaultCountry]; !ok {
		return nil, fmt.Errorf("country table is missing the default country %q", DefaultCountry)
	}
	return t, nil
}

// DefaultCountryTable returns the table compiled into the binary.
func DefaultCountryTable() *CountryTable {
	t, err := LoadCountryTable(countriesYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve finds the country named in a free-text destination. The trailing
// comma segment is tried first, then every segment in order, then the whole
// string. ok is false when nothing matched and DefaultCountry was returned.
func (t *CountryTable) Resolve(destination string) (country string, ok bool) {
	parts := strings.Split(destination, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) > 1 {
		if e, found := t.lookup(parts[len(parts)-1]); found {
			return e.Name, true
		}
	}
	for _, part := range parts {
		if e, found := t.lookup(part); found {
			return e.Name, true
		}
	}
	if e, found := t.lookup(destination); found {
		return e.Name, true
	}
	return DefaultCountry, false
}

// CurrencyCode returns the ISO 4217 code for a resolved country name.
func (t *CountryTable) CurrencyCode(country string) string {
	if e, ok := t.byName[country]; ok {
		return e.Currency
	}
	return t.byName[DefaultCountry].Currency
}

// EmergencyContacts returns the emergency numbers for a resolved country name,
// or the generic "check local numbers" pair when the table has none.
func (t *CountryTable) EmergencyContacts(country string) Emergency {
	if e, ok := t.byName[country]; ok && e.Emergency != nil {
		return *e.Emergency
	}
	return Emergency{Police: checkLocal, Ambulance: checkLocal}
}

func (t *CountryTable) lookup(s string) (*countryEntry, bool) {
	key := normalizeKey(s)
	if key == "" {
		return nil, false
	}
	e, ok := t.byKey[key]
	return e, ok
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
