package enrichment

import "testing"

func TestResolve(t *testing.T) {
	table := DefaultCountryTable()

	tests := []struct {
		destination string
		want        string
		wantOK      bool
	}{
		{"Paris, France", "France", true},
		{"Kyoto, Kansai, Japan", "Japan", true},
		{"  Lahore ,  Pakistan  ", "Pakistan", true},
		{"Edinburgh, scotland", "United Kingdom", true},
		{"Dubai, United Arab Emirates", "UAE", true},
		// No trailing match: every segment is scanned.
		{"Italy, Rome", "Italy", true},
		{"Thailand", "Thailand", true},
		{"Lisbon, Portugal", "Portugal", true},
		{"Atlantis", DefaultCountry, false},
		{"Springfield, Nowhere", DefaultCountry, false},
		{"", DefaultCountry, false},
	}

	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			got, ok := table.Resolve(tt.destination)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.destination, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_TrailingSegmentWins(t *testing.T) {
	table := DefaultCountryTable()
	// "Canada" appears first but the trailing segment is checked before the scan.
	got, ok := table.Resolve("Canada Place, Vancouver, Japan")
	if !ok || got != "Japan" {
		t.Fatalf("expected Japan, got %q (ok=%v)", got, ok)
	}
}

func TestEmergencyContacts(t *testing.T) {
	table := DefaultCountryTable()

	fr := table.EmergencyContacts("France")
	if fr.Police != "17" || fr.Ambulance != "15" || fr.TouristPolice == "" {
		t.Errorf("unexpected France contacts: %+v", fr)
	}

	pt := table.EmergencyContacts("Portugal")
	if pt.Police != checkLocal || pt.Ambulance != checkLocal || pt.TouristPolice != "" {
		t.Errorf("expected generic fallback for Portugal, got %+v", pt)
	}
}

func TestCurrencyCode(t *testing.T) {
	table := DefaultCountryTable()
	if got := table.CurrencyCode("Japan"); got != "JPY" {
		t.Errorf("Japan: got %s", got)
	}
	if got := table.CurrencyCode("Narnia"); got != "USD" {
		t.Errorf("unknown country should default to USD, got %s", got)
	}
}

func TestLoadCountryTable_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":        "countries: [",
		"missing default": "countries:\n  - name: France\n    currency: EUR\n",
		"missing code":    "countries:\n  - name: United States\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadCountryTable([]byte(doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
