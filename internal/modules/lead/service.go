package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"atlas/internal/itinerary"
)

// Service records and retrieves leads.
type Service struct {
	store *Store
	now   func() time.Time
}

// NewService creates a Service backed by the given Store.
func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Record stores a generated itinerary together with the request that produced it.
func (s *Service) Record(ctx context.Context, req itinerary.TripRequest, it *itinerary.Itinerary) (*Lead, error) {
	if it == nil {
		return nil, fmt.Errorf("record lead: nil itinerary")
	}
	l := &Lead{
		ID:          uuid.NewString(),
		Email:       req.Email,
		Destination: req.Destination,
		Request:     req,
		Itinerary:   *it,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("record lead: %w", err)
	}
	return l, nil
}

// Get returns ErrNotFound for unknown or malformed IDs.
func (s *Service) Get(ctx context.Context, id string) (*Lead, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// List clamps limit to [1, MaxListLimit], using DefaultListLimit when it is not positive.
func (s *Service) List(ctx context.Context, limit int) ([]Summary, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.store.List(ctx, limit)
}
