// README: Destination enrichment: country resolution, weather, exchange rate, emergency contacts.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// WeatherProvider returns current conditions for a free-text location.
type WeatherProvider interface {
	Current(ctx context.Context, query string) (Weather, error)
}

// RateProvider returns a currency conversion rate.
type RateProvider interface {
	Rate(ctx context.Context, base, target string) (float64, error)
}

// InsightsProvider returns optional local context for a destination.
type InsightsProvider interface {
	Insights(ctx context.Context, destination string) (*Insights, error)
}

// Client fetches the Destination for an itinerary request. It performs at
// most one weather call and one exchange-rate call per Fetch.
type Client struct {
	weather  WeatherProvider
	rates    RateProvider
	insights InsightsProvider
	table    *CountryTable
	timeout  time.Duration
	logger   *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithInsights enables the optional local-insights lookup.
func WithInsights(p InsightsProvider) Option {
	return func(c *Client) { c.insights = p }
}

// WithCountryTable replaces the embedded country table.
func WithCountryTable(t *CountryTable) Option {
	return func(c *Client) { c.table = t }
}

// WithTimeout bounds every outbound call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for warnings and degraded lookups.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a Client with the embedded country table and a 20s per-call timeout.
func NewClient(weather WeatherProvider, rates RateProvider, opts ...Option) *Client {
	c := &Client{
		weather: weather,
		rates:   rates,
		timeout: 20 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.table == nil {
		c.table = DefaultCountryTable()
	}
	return c
}

// Fetch resolves the destination's country and gathers live weather, the
// USD exchange rate and emergency contacts. Weather failures abort the fetch;
// exchange-rate failures degrade to a placeholder string.
func (c *Client) Fetch(ctx context.Context, destination string) (*Destination, error) {
	wctx, cancel := c.withTimeout(ctx)
	weather, err := c.weather.Current(wctx, destination)
	cancel()
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, &EnrichmentError{Destination: destination, Err: err}
	}

	country := c.ResolveCountry(destination)
	code := c.table.CurrencyCode(country)

	rate, err := c.exchangeRate(ctx, code)
	if err != nil {
		return nil, err
	}

	dest := &Destination{
		Country:   country,
		Weather:   weather,
		Currency:  Currency{Code: code, ExchangeRate: rate},
		Emergency: c.table.EmergencyContacts(country),
	}

	if c.insights != nil {
		ictx, cancel := c.withTimeout(ctx)
		in, err := c.insights.Insights(ictx, destination)
		cancel()
		if err != nil {
			c.logger.Warn("local insights unavailable", "destination", destination, "error", err)
		} else if in != nil {
			dest.Highlights = in.Highlights
			dest.AirportTransfer = in.AirportTransfer
		}
	}

	return dest, nil
}

// ResolveCountry maps a destination to a country in the table, falling back
// to DefaultCountry with a warning.
func (c *Client) ResolveCountry(destination string) string {
	country, ok := c.table.Resolve(destination)
	if !ok {
		c.logger.Warn("no currency mapping found for destination, using default",
			"destination", destination, "country", country)
	}
	return country
}

func (c *Client) exchangeRate(ctx context.Context, code string) (string, error) {
	if code == "USD" {
		return sameCurrencyRate, nil
	}

	rctx, cancel := c.withTimeout(ctx)
	defer cancel()
	rate, err := c.rates.Rate(rctx, "USD", code)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			return "", err
		}
		c.logger.Error("exchange rate lookup failed", "currency", code, "error", err)
		return fmt.Sprintf("Exchange rate unavailable for %s", code), nil
	}
	return fmt.Sprintf("1 USD = %.2f %s", rate, code), nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
