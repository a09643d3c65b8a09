package quota

import (
	"context"
	"errors"
	"time"
)

// ErrQuotaExceeded is returned when a client has used up today's generations.
var ErrQuotaExceeded = errors.New("daily generation quota exceeded")

// Service enforces a per-client daily generation limit. A limit of 0 disables it.
type Service struct {
	store *Store
	limit int64
	now   func() time.Time
}

func NewService(store *Store, limit int) *Service {
	return &Service{store: store, limit: int64(limit), now: time.Now}
}

// Consume records one generation for client and returns the remaining allowance.
func (s *Service) Consume(ctx context.Context, client string) (int, error) {
	if s == nil || s.limit <= 0 {
		return -1, nil
	}
	n, err := s.store.Incr(ctx, client, s.day())
	if err != nil {
		return 0, err
	}
	if n > s.limit {
		return 0, ErrQuotaExceeded
	}
	return int(s.limit - n), nil
}

// Remaining reports today's allowance without consuming it.
func (s *Service) Remaining(ctx context.Context, client string) (int, error) {
	if s == nil || s.limit <= 0 {
		return -1, nil
	}
	n, err := s.store.Get(ctx, client, s.day())
	if err != nil {
		return 0, err
	}
	if n >= s.limit {
		return 0, nil
	}
	return int(s.limit - n), nil
}

func (s *Service) day() string {
	return s.now().UTC().Format("2006-01-02")
}
