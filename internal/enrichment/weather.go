// README: WeatherAPI.com current-conditions client.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const weatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIClient queries WeatherAPI.com for current conditions.
type WeatherAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewWeatherAPIClient returns a client for the given key. An empty key is
// accepted here and reported as a ConfigurationError on first use.
func NewWeatherAPIClient(apiKey string, httpClient *http.Client) *WeatherAPIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WeatherAPIClient{apiKey: apiKey, baseURL: weatherAPIBaseURL, httpClient: httpClient}
}

// WithBaseURL points the client at a different host (tests, proxies).
func (c *WeatherAPIClient) WithBaseURL(baseURL string) *WeatherAPIClient {
	c.baseURL = baseURL
	return c
}

type weatherResponse struct {
	Current struct {
		TempC     float64 `json:"temp_c"`
		TempF     float64 `json:"temp_f"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// Current returns the current weather for a free-text location query.
func (c *WeatherAPIClient) Current(ctx context.Context, query string) (Weather, error) {
	if c.apiKey == "" {
		return Weather{}, &ConfigurationError{Setting: "WEATHERAPI_KEY"}
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/current.json?"+q.Encode(), nil)
	if err != nil {
		return Weather{}, fmt.Errorf("weather: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Weather{}, fmt.Errorf("weather: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Weather{}, fmt.Errorf("weather: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Weather{}, fmt.Errorf("weather: provider returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var wr weatherResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return Weather{}, fmt.Errorf("weather: unmarshal response: %w", err)
	}

	return Weather{
		Forecast: wr.Current.Condition.Text,
		Temperature: fmt.Sprintf("%s°C (%s°F)",
			strconv.FormatFloat(wr.Current.TempC, 'f', -1, 64),
			strconv.FormatFloat(wr.Current.TempF, 'f', -1, 64)),
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
