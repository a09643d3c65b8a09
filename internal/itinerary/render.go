package itinerary

import (
	"fmt"
	"strings"
)

// RenderMarkdown formats an itinerary for display or download.
func RenderMarkdown(it *Itinerary) string {
	if it == nil {
		return ""
	}
	var b strings.Builder
	ov := it.TripOverview

	fmt.Fprintf(&b, "# Trip to %s\n\n", ov.Destination)
	writeField(&b, "Dates", ov.Dates)
	writeField(&b, "Duration", ov.Duration)
	writeField(&b, "Budget", ov.BudgetLevel)
	writeField(&b, "Accommodation", ov.Accommodation)
	writeField(&b, "Travelers", ov.Travelers)
	writeField(&b, "Dietary plan", ov.DietaryPlan)
	writeField(&b, "Trip type", ov.TripType)

	for _, day := range it.Days {
		if day.Date != "" {
			fmt.Fprintf(&b, "\n## Day %d (%s)\n", day.Day, day.Date)
		} else {
			fmt.Fprintf(&b, "\n## Day %d\n", day.Day)
		}
		writePeriod(&b, "Morning", day.Morning)
		writePeriod(&b, "Afternoon", day.Afternoon)
		writePeriod(&b, "Evening", day.Evening)
	}

	info := it.AdditionalInfo
	b.WriteString("\n## Good to know\n\n")
	writeField(&b, "Weather", joinNonEmpty(", ", info.Weather.Forecast, info.Weather.Temperature))
	if rate := info.LocalCurrency.ExchangeRate; rate != "" {
		writeField(&b, "Currency", fmt.Sprintf("%s (%s)", info.LocalCurrency.Code, rate))
	} else {
		writeField(&b, "Currency", info.LocalCurrency.Code)
	}
	writeField(&b, "From the airport", info.Transportation.FromAirport)
	if len(info.Transportation.LocalTransport) > 0 {
		writeField(&b, "Getting around", strings.Join(info.Transportation.LocalTransport, ", "))
	}
	writeField(&b, "Police", info.Emergency.Police)
	writeField(&b, "Ambulance", info.Emergency.Ambulance)
	writeField(&b, "Tourist police", info.Emergency.TouristPolice)

	if len(info.PackingTips) > 0 {
		b.WriteString("\n### Packing tips\n\n")
		for _, tip := range info.PackingTips {
			fmt.Fprintf(&b, "- %s\n", tip)
		}
	}
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}

func writePeriod(b *strings.Builder, label string, p Period) {
	if p.Time != "" {
		fmt.Fprintf(b, "\n### %s (%s)\n\n", label, p.Time)
	} else {
		fmt.Fprintf(b, "\n### %s\n\n", label)
	}
	for _, a := range p.Activities {
		fmt.Fprintf(b, "- %s\n", a)
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
