// README: Google Maps backed local insights (attractions and airport transfer) for the prompt.
package maps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"atlas/internal/enrichment"
)

const defaultHighlights = 5

// InsightsService implements enrichment.InsightsProvider.
type InsightsService struct {
	places *PlacesService
	routes *RouteService
	logger *slog.Logger
}

// NewInsightsService builds the provider from a single Maps API key.
func NewInsightsService(apiKey string, logger *slog.Logger) (*InsightsService, error) {
	places, err := NewPlacesService(apiKey)
	if err != nil {
		return nil, err
	}
	routes, err := NewRouteService(apiKey)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InsightsService{places: places, routes: routes, logger: logger}, nil
}

// Insights returns attraction names and an airport transfer estimate. The
// transfer estimate is best effort; only a failed attraction search is an error.
func (s *InsightsService) Insights(ctx context.Context, destination string) (*enrichment.Insights, error) {
	places, err := s.places.TopAttractions(ctx, destination, defaultHighlights)
	if err != nil {
		return nil, err
	}

	out := &enrichment.Insights{}
	for _, p := range places {
		out.Highlights = append(out.Highlights, p.Name)
	}

	airport := destination + " international airport"
	d, dist, err := s.routes.GetTravelEstimate(ctx, airport, destination)
	switch {
	case err == nil:
		out.AirportTransfer = fmt.Sprintf("About %s (%s) by car from the main airport", humanDuration(d), dist)
	case errors.Is(err, ErrNoRoute):
	default:
		s.logger.Warn("airport transfer estimate failed", "destination", destination, "error", err)
	}
	return out, nil
}

func humanDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%d min", m)
	case m == 0:
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d min", h, m)
}
