package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"atlas/internal/itinerary"
)

func sample() *itinerary.Itinerary {
	return &itinerary.Itinerary{
		TripOverview: itinerary.TripOverview{Destination: "Lisbon, Portugal", Duration: "1 day"},
		Days: []itinerary.DayPlan{{
			Day:     1,
			Morning: itinerary.Period{Activities: []string{"Belém Tower"}},
		}},
	}
}

func TestWriteItineraryFormats(t *testing.T) {
	var md bytes.Buffer
	if err := writeItinerary(&md, "markdown", sample()); err != nil {
		t.Fatalf("markdown: %v", err)
	}
	if !strings.Contains(md.String(), "# Trip to Lisbon, Portugal") {
		t.Fatalf("unexpected markdown %s", md.String())
	}

	var js bytes.Buffer
	if err := writeItinerary(&js, "json", sample()); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back itinerary.Itinerary
	if err := json.Unmarshal(js.Bytes(), &back); err != nil || back.TripOverview.Destination != "Lisbon, Portugal" {
		t.Fatalf("unexpected json %s (%v)", js.String(), err)
	}

	var pdf bytes.Buffer
	if err := writeItinerary(&pdf, "pdf", sample()); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(pdf.Bytes(), []byte("%PDF")) {
		t.Fatal("expected PDF output")
	}
}

func TestGenerateRejectsBadFlags(t *testing.T) {
	for name, args := range map[string][]string{
		"unknown format": {"generate", "Lisbon", "--duration", "2 days", "--format", "html"},
		"pdf to stdout":  {"generate", "Lisbon", "--duration", "2 days", "--format", "pdf"},
		"no length":      {"generate", "Lisbon"},
	} {
		cmd := newGenerateCmd()
		cmd.SetArgs(args[1:])
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		if err := cmd.Execute(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestResolveCommand(t *testing.T) {
	cmd := newResolveCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"Kyoto, Japan", "Atlantis"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "country:   Japan") || !strings.Contains(got, "JPY") {
		t.Fatalf("expected Japan resolution, got %s", got)
	}
	if !strings.Contains(got, "United States (fallback)") {
		t.Fatalf("expected fallback for unknown destination, got %s", got)
	}
}
