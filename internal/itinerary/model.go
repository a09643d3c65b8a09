// README: Trip request and the canonical itinerary schema shared by the prompt builder and parser.
package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Itinerary is the generated travel plan. The JSON layout is the contract
// the prompt asks the model to follow.
type Itinerary struct {
	TripOverview   TripOverview   `json:"trip_overview"`
	Days           []DayPlan      `json:"itinerary"`
	AdditionalInfo AdditionalInfo `json:"additional_info"`
}

type TripOverview struct {
	Destination   string `json:"destination"`
	Dates         string `json:"dates,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	Duration      string `json:"duration"`
	BudgetLevel   string `json:"budget_level,omitempty"`
	Accommodation string `json:"accommodation,omitempty"`
	Travelers     string `json:"travelers,omitempty"`
	DietaryPlan   string `json:"dietary_plan,omitempty"`
	TripType      string `json:"trip_type,omitempty"`
}

type DayPlan struct {
	Day       int    `json:"day"`
	Date      string `json:"date,omitempty"`
	Morning   Period `json:"morning"`
	Afternoon Period `json:"afternoon"`
	Evening   Period `json:"evening"`
}

// Period is one part of a day. Time is an optional range such as "09:00 - 12:00".
type Period struct {
	Time       string   `json:"time,omitempty"`
	Activities []string `json:"activities"`
}

// UnmarshalJSON accepts the canonical object form as well as a bare list of
// activities or a single activity string.
func (p *Period) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var acts []string
		if err := json.Unmarshal(data, &acts); err != nil {
			return fmt.Errorf("period activities: %w", err)
		}
		*p = Period{Activities: acts}
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var act string
		if err := json.Unmarshal(data, &act); err != nil {
			return err
		}
		*p = Period{Activities: []string{act}}
		return nil
	}

	type plain Period
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Period(v)
	return nil
}

type AdditionalInfo struct {
	Weather        Weather        `json:"weather"`
	PackingTips    []string       `json:"packing_tips"`
	LocalCurrency  LocalCurrency  `json:"local_currency"`
	Transportation Transportation `json:"transportation"`
	Emergency      Emergency      `json:"emergency"`
}

type Weather struct {
	Forecast    string `json:"forecast"`
	Temperature string `json:"temperature"`
}

type LocalCurrency struct {
	Code         string `json:"code"`
	ExchangeRate string `json:"exchange_rate"`
}

type Transportation struct {
	FromAirport    string   `json:"from_airport"`
	LocalTransport []string `json:"local_transport"`
}

type Emergency struct {
	Police        string `json:"police"`
	Ambulance     string `json:"ambulance"`
	TouristPolice string `json:"tourist_police,omitempty"`
}

// UnmarshalJSON also accepts a bare list of transport options.
func (t *Transportation) UnmarshalJSON(data []byte) error {
	if strings.HasPrefix(strings.TrimSpace(string(data)), "[") {
		var opts []string
		if err := json.Unmarshal(data, &opts); err != nil {
			return fmt.Errorf("transportation: %w", err)
		}
		*t = Transportation{LocalTransport: opts}
		return nil
	}
	type plain Transportation
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = Transportation(v)
	return nil
}
