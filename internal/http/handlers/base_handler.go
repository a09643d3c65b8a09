// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"atlas/internal/enrichment"
	"atlas/internal/itinerary"
	"atlas/internal/modules/lead"
	"atlas/internal/modules/quota"
	"atlas/internal/service"
)

// genericFailure is the only message clients see for generation failures;
// details go to the log.
const genericFailure = "failed to generate itinerary, please try again"

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeGenerationError maps planner errors to a status code. Validation and
// quota errors are shown to the client; everything else is generic.
func writeGenerationError(c *gin.Context, err error) {
	var (
		cfgErr *enrichment.ConfigurationError
		enrErr *enrichment.EnrichmentError
		genErr *service.GenerationError
		badErr *itinerary.MalformedResponseError
	)
	switch {
	case errors.Is(err, itinerary.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, quota.ErrQuotaExceeded):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &cfgErr):
		writeError(c, http.StatusInternalServerError, genericFailure)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, genericFailure)
	case errors.As(err, &enrErr), errors.As(err, &genErr), errors.As(err, &badErr):
		writeError(c, http.StatusBadGateway, genericFailure)
	default:
		writeError(c, http.StatusInternalServerError, genericFailure)
	}
}

func writeLeadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, lead.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
