// README: Prompt construction for itinerary generation. The schema below must match Parse.
package itinerary

import (
	"fmt"
	"strings"

	"atlas/internal/enrichment"
)

const schemaInstructions = `Output JSON Schema:
{
  "trip_overview": {
    "destination": "string",
    "dates": "string (e.g. 'Mar 3, 2026 - Mar 7, 2026', empty if no dates)",
    "start_date": "YYYY-MM-DD or empty",
    "end_date": "YYYY-MM-DD or empty",
    "duration": "string (e.g. '5 days')",
    "budget_level": "string",
    "accommodation": "string",
    "travelers": "string",
    "dietary_plan": "string",
    "trip_type": "string (short label such as 'Cultural getaway')"
  },
  "itinerary": [
    {
      "day": 1,
      "date": "YYYY-MM-DD or empty",
      "morning":   {"time": "08:00 - 12:00", "activities": ["string"]},
      "afternoon": {"time": "12:00 - 17:00", "activities": ["string"]},
      "evening":   {"time": "17:00 - 22:00", "activities": ["string"]}
    }
  ],
  "additional_info": {
    "weather": {"forecast": "string", "temperature": "string"},
    "packing_tips": ["string"],
    "local_currency": {"code": "string", "exchange_rate": "string"},
    "transportation": {"from_airport": "string", "local_transport": ["string"]},
    "emergency": {"police": "string", "ambulance": "string", "tourist_police": "string (optional)"}
  }
}`

// BuildPrompt turns a trip request into the generation prompt. When dest is
// non-nil its live values are embedded and the model is told to copy them.
func BuildPrompt(req TripRequest, dest *enrichment.Destination) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Role: You are an expert travel planner. Create a detailed day-by-day travel itinerary for %s.\n\n", req.Destination)

	b.WriteString("Trip Details:\n")
	writeDetail(&b, "Destination", req.Destination)
	writeDetail(&b, "Dates", req.DateRangeText())
	writeDetail(&b, "Duration", req.DurationText())
	writeDetail(&b, "Budget", req.BudgetText())
	writeDetail(&b, "Accommodation Preference", req.Accommodation)
	writeDetail(&b, "Travelers", req.TravelersText())
	writeDetail(&b, "Dietary Preference", req.DietaryPreference)
	writeDetail(&b, "Travel Style", req.TravelStyle)
	if len(req.Interests) > 0 {
		writeDetail(&b, "Interests", strings.Join(req.Interests, ", "))
	}

	if dest != nil {
		b.WriteString("\nLive Destination Data (copy these values EXACTLY into additional_info, do not invent your own):\n")
		writeDetail(&b, "Country", dest.Country)
		writeDetail(&b, "Weather forecast", dest.Weather.Forecast)
		writeDetail(&b, "Temperature", dest.Weather.Temperature)
		writeDetail(&b, "Currency code", dest.Currency.Code)
		writeDetail(&b, "Exchange rate", dest.Currency.ExchangeRate)
		writeDetail(&b, "Police", dest.Emergency.Police)
		writeDetail(&b, "Ambulance", dest.Emergency.Ambulance)
		writeDetail(&b, "Tourist police", dest.Emergency.TouristPolice)

		if len(dest.Highlights) > 0 || dest.AirportTransfer != "" {
			b.WriteString("\nLocal Insights (use as inspiration, verify they fit the traveler):\n")
			for _, h := range dest.Highlights {
				fmt.Fprintf(&b, "- Highlight: %s\n", h)
			}
			writeDetail(&b, "Airport transfer", dest.AirportTransfer)
		}
	}

	b.WriteString("\nRULES:\n")
	if n := req.DayCount(); n > 0 {
		fmt.Fprintf(&b, "1. The \"itinerary\" array MUST contain exactly %d days, numbered from 1.\n", n)
	} else {
		b.WriteString("1. The \"itinerary\" array MUST contain one entry per day of the trip, numbered from 1.\n")
	}
	b.WriteString(`2. Every day MUST have non-empty "morning", "afternoon" and "evening" activity lists.
3. Activities are plain strings naming the place or experience, with an estimated cost in USD when relevant.
4. Respect the dietary preference in every dining suggestion and the budget in every recommendation.
5. Fill every field of the schema. Use empty strings only where the schema allows it.
6. Return ONLY the JSON object. No explanations, no markdown, no code fences, no text before or after it.

`)
	b.WriteString(schemaInstructions)
	b.WriteString("\n")
	return b.String()
}

func writeDetail(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}
