package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"atlas/internal/ai"
	"atlas/internal/enrichment"
	"atlas/internal/itinerary"
	"atlas/internal/modules/lead"
)

// DefaultGenerationTimeout bounds a single model call.
const DefaultGenerationTimeout = 60 * time.Second

// GenerationError reports a failed or timed-out call to the generative model.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("itinerary generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Enricher fetches live destination data.
type Enricher interface {
	Fetch(ctx context.Context, destination string) (*enrichment.Destination, error)
}

// LeadRecorder persists a generated itinerary.
type LeadRecorder interface {
	Record(ctx context.Context, req itinerary.TripRequest, it *itinerary.Itinerary) (*lead.Lead, error)
}

// Result is one generated itinerary with the live data it was built from.
type Result struct {
	LeadID      string                  `json:"id,omitempty"`
	Itinerary   *itinerary.Itinerary    `json:"itinerary"`
	Destination *enrichment.Destination `json:"destination"`
}

// TripPlanner orchestrates enrichment, prompt construction, generation and
// parsing for one trip request. Steps run strictly in that order.
type TripPlanner struct {
	enricher Enricher
	llm      ai.LLMProvider
	leads    LeadRecorder
	timeout  time.Duration
	logger   *slog.Logger
}

// PlannerOption customises a TripPlanner.
type PlannerOption func(*TripPlanner)

// WithLeadRecorder enables best-effort lead persistence.
func WithLeadRecorder(r LeadRecorder) PlannerOption {
	return func(p *TripPlanner) { p.leads = r }
}

func WithGenerationTimeout(d time.Duration) PlannerOption {
	return func(p *TripPlanner) { p.timeout = d }
}

func WithLogger(l *slog.Logger) PlannerOption {
	return func(p *TripPlanner) { p.logger = l }
}

// NewTripPlanner creates a TripPlanner with initialized dependencies.
func NewTripPlanner(enricher Enricher, llm ai.LLMProvider, opts ...PlannerOption) *TripPlanner {
	p := &TripPlanner{
		enricher: enricher,
		llm:      llm,
		timeout:  DefaultGenerationTimeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Generate validates req and produces an itinerary. Errors keep their kind:
// itinerary.ErrInvalidRequest, *enrichment.ConfigurationError,
// *enrichment.EnrichmentError, *GenerationError or *itinerary.MalformedResponseError.
func (p *TripPlanner) Generate(ctx context.Context, req itinerary.TripRequest) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := p.logger.With("destination", req.Destination)
	start := time.Now()

	dest, err := p.enricher.Fetch(ctx, req.Destination)
	if err != nil {
		log.Error("enrichment failed", "error", err)
		return nil, err
	}

	prompt := itinerary.BuildPrompt(req, dest)

	raw, err := p.generate(ctx, prompt)
	if err != nil {
		log.Error("generation failed", "error", err)
		return nil, err
	}

	it, err := itinerary.Parse(raw, dest)
	if err != nil {
		log.Error("model response rejected", "error", err, "response_bytes", len(raw))
		return nil, err
	}

	res := &Result{Itinerary: it, Destination: dest}
	if p.leads != nil {
		if l, err := p.leads.Record(ctx, req, it); err != nil {
			log.Warn("lead not recorded", "error", err)
		} else {
			res.LeadID = l.ID
		}
	}

	log.Info("itinerary generated",
		"country", dest.Country,
		"days", len(it.Days),
		"lead_id", res.LeadID,
		"elapsed", time.Since(start),
	)
	return res, nil
}

func (p *TripPlanner) generate(ctx context.Context, prompt string) (string, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	raw, err := p.llm.GenerateText(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	return raw, nil
}

// IsTimeout reports whether err was caused by an expired deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
