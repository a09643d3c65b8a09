// README: Live destination data attached to every generated itinerary.
package enrichment

// Destination is the enrichment fetched for one itinerary request. It is never
// cached; its weather, currency and emergency values are authoritative over
// anything the model produces.
type Destination struct {
	Country   string    `json:"country"`
	Weather   Weather   `json:"weather"`
	Currency  Currency  `json:"currency"`
	Emergency Emergency `json:"emergency"`

	// Highlights and AirportTransfer are only filled when local insights are configured.
	Highlights      []string `json:"highlights,omitempty"`
	AirportTransfer string   `json:"airport_transfer,omitempty"`
}

type Weather struct {
	Forecast    string `json:"forecast"`
	Temperature string `json:"temperature"`
}

type Currency struct {
	Code         string `json:"code"`
	ExchangeRate string `json:"exchange_rate"`
}

type Emergency struct {
	Police        string `json:"police" yaml:"police"`
	Ambulance     string `json:"ambulance" yaml:"ambulance"`
	TouristPolice string `json:"tourist_police,omitempty" yaml:"tourist_police"`
}

// Insights is the optional local context (points of interest, airport transfer)
// embedded in the prompt as hints.
type Insights struct {
	Highlights      []string
	AirportTransfer string
}

const (
	// DefaultCountry is used when no table entry matches the destination.
	DefaultCountry = "United States"

	sameCurrencyRate = "Same currency (USD)"
	checkLocal       = "Check local emergency numbers"
)
