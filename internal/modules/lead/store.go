// README: Lead store backed by PostgreSQL; request and itinerary are kept as jsonb.
package lead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, l *Lead) error {
	req, err := json.Marshal(l.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	it, err := json.Marshal(l.Itinerary)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO leads (id, email, destination, request, itinerary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID,
		nullIfEmpty(l.Email),
		l.Destination,
		req,
		it,
		l.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*Lead, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id::text, COALESCE(email, ''), destination, request, itinerary, created_at
		FROM leads
		WHERE id = $1`, id,
	)

	var l Lead
	var req, it []byte
	err := row.Scan(&l.ID, &l.Email, &l.Destination, &req, &it, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(req, &l.Request); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	if err := json.Unmarshal(it, &l.Itinerary); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	return &l, nil
}

// List returns the most recent leads first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, COALESCE(email, ''), destination, created_at
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Email, &sm.Destination, &sm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
