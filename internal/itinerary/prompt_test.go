package itinerary

import (
	"strings"
	"testing"

	"atlas/internal/enrichment"
)

func TestBuildPrompt_IncludesRequestAndLiveData(t *testing.T) {
	req := TripRequest{
		Destination:       "Kyoto, Japan",
		StartDate:         "2026-03-03",
		EndDate:           "2026-03-07",
		Budget:            "moderate",
		BudgetAmount:      2000,
		Accommodation:     "ryokan",
		Travelers:         "couple",
		NumberOfTravelers: 2,
		DietaryPreference: "vegetarian",
		Interests:         []string{"temples", "food"},
		TravelStyle:       "relaxed",
	}
	dest := kyotoDestination()
	dest.Highlights = []string{"Kinkaku-ji"}
	dest.AirportTransfer = "About 75 minutes by train from KIX"

	prompt := BuildPrompt(req, dest)

	for _, want := range []string{
		"Kyoto, Japan",
		"Mar 3, 2026 - Mar 7, 2026",
		"5 days",
		"moderate (about $2000 USD)",
		"ryokan",
		"couple (2)",
		"vegetarian",
		"temples, food",
		"relaxed",
		"Partly cloudy",
		"18°C (64.4°F)",
		"1 USD = 151.23 JPY",
		"- Police: 110",
		"- Ambulance: 119",
		"03-3501-0110",
		"Kinkaku-ji",
		"About 75 minutes by train from KIX",
		"exactly 5 days",
		"Return ONLY the JSON object",
		`"additional_info"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_WithoutDatesOrEnrichment(t *testing.T) {
	req := TripRequest{Destination: "Lisbon", Duration: "a long weekend"}
	prompt := BuildPrompt(req, nil)

	if !strings.Contains(prompt, "- Duration: a long weekend") {
		t.Fatalf("expected free-text duration in prompt")
	}
	if strings.Contains(prompt, "Live Destination Data") {
		t.Fatalf("expected no live data section without enrichment")
	}
	if strings.Contains(prompt, "- Dates:") {
		t.Fatalf("expected no dates line without dates")
	}
	if !strings.Contains(prompt, "one entry per day") {
		t.Fatalf("expected generic day-count rule")
	}
}

func TestBuildPrompt_SkipsEmptyInsights(t *testing.T) {
	prompt := BuildPrompt(TripRequest{Destination: "Tokyo", Duration: "3 days"}, &enrichment.Destination{Country: "Japan"})
	if strings.Contains(prompt, "Local Insights") {
		t.Fatalf("expected no insights section")
	}
	if !strings.Contains(prompt, "- Country: Japan") {
		t.Fatalf("expected country line")
	}
}
