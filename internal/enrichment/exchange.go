// README: ExchangeRate-API pair-conversion client.
package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const exchangeRateBaseURL = "https://v6.exchangerate-api.com/v6"

// ExchangeRateClient looks up base→target conversion rates.
type ExchangeRateClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewExchangeRateClient returns a client for the given key. An empty key is
// reported as a ConfigurationError on first use.
func NewExchangeRateClient(apiKey string, httpClient *http.Client) *ExchangeRateClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ExchangeRateClient{apiKey: apiKey, baseURL: exchangeRateBaseURL, httpClient: httpClient}
}

// WithBaseURL points the client at a different host (tests, proxies).
func (c *ExchangeRateClient) WithBaseURL(baseURL string) *ExchangeRateClient {
	c.baseURL = baseURL
	return c
}

type pairResponse struct {
	Result         string  `json:"result"`
	ErrorType      string  `json:"error-type"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Rate returns how many units of target one unit of base buys. Provider
// failures wrap ErrExchangeRateUnavailable; a missing key is a ConfigurationError.
func (c *ExchangeRateClient) Rate(ctx context.Context, base, target string) (float64, error) {
	if c.apiKey == "" {
		return 0, &ConfigurationError{Setting: "EXCHANGERATE_API_KEY"}
	}

	endpoint := fmt.Sprintf("%s/%s/pair/%s/%s", c.baseURL,
		url.PathEscape(c.apiKey), url.PathEscape(base), url.PathEscape(target))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", ErrExchangeRateUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: do request: %v", ErrExchangeRateUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: read response: %v", ErrExchangeRateUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: provider returned %d: %s", ErrExchangeRateUnavailable, resp.StatusCode, truncate(body, 200))
	}

	var pr pairResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return 0, fmt.Errorf("%w: unmarshal response: %v", ErrExchangeRateUnavailable, err)
	}
	if pr.ErrorType != "" {
		return 0, fmt.Errorf("%w: api error: %s", ErrExchangeRateUnavailable, pr.ErrorType)
	}
	if pr.ConversionRate == 0 {
		return 0, fmt.Errorf("%w: response has no conversion_rate", ErrExchangeRateUnavailable)
	}
	return pr.ConversionRate, nil
}
