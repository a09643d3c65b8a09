package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// textSearcher is the subset of *maps.Client used by PlacesService.
type textSearcher interface {
	TextSearch(ctx context.Context, r *maps.TextSearchRequest) (maps.PlacesSearchResponse, error)
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client textSearcher
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// Results whose name contains one of these are lodging or transit, not sights.
var excludedKeywords = []string{"Hotel", "Hostel", "Airport", "Station", "Parking", "Apartments"}

const (
	minRating  = 4.0
	minReviews = 50
)

// TopAttractions returns up to limit well-rated tourist attractions in destination.
func (s *PlacesService) TopAttractions(ctx context.Context, destination string, limit int) ([]Place, error) {
	r := &maps.TextSearchRequest{
		Query:    "top tourist attractions in " + destination,
		Language: "en",
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	for _, result := range resp.Results {
		if result.Rating < minRating || result.UserRatingsTotal < minReviews {
			continue
		}
		if containsAny(result.Name, excludedKeywords) {
			continue
		}

		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})

		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
