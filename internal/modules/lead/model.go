// README: Lead aggregate: a generated itinerary and the contact it was generated for.
package lead

import (
	"errors"
	"time"

	"atlas/internal/itinerary"
)

// ErrNotFound is returned when no lead has the requested ID.
var ErrNotFound = errors.New("lead not found")

// Lead is one successful generation. Email is empty for anonymous submissions.
type Lead struct {
	ID          string                `json:"id"`
	Email       string                `json:"email,omitempty"`
	Destination string                `json:"destination"`
	Request     itinerary.TripRequest `json:"request"`
	Itinerary   itinerary.Itinerary   `json:"itinerary"`
	CreatedAt   time.Time             `json:"created_at"`
}

// Summary is the list view used by the admin endpoint.
type Summary struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)
