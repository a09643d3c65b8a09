// README: Itinerary generation, retrieval and export handlers.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"atlas/internal/enrichment"
	"atlas/internal/export"
	"atlas/internal/http/middleware"
	"atlas/internal/itinerary"
	"atlas/internal/modules/lead"
	"atlas/internal/modules/quota"
	"atlas/internal/service"
)

// Planner generates one itinerary per request.
type Planner interface {
	Generate(ctx context.Context, req itinerary.TripRequest) (*service.Result, error)
}

// QuotaConsumer charges and reports generations per client key. A negative
// count means the quota is disabled.
type QuotaConsumer interface {
	Consume(ctx context.Context, client string) (int, error)
	Remaining(ctx context.Context, client string) (int, error)
}

// LeadReader reads stored itineraries.
type LeadReader interface {
	Get(ctx context.Context, id string) (*lead.Lead, error)
	List(ctx context.Context, limit int) ([]lead.Summary, error)
}

type ItineraryHandler struct {
	planner Planner
	quota   QuotaConsumer
	leads   LeadReader
	baseURL string
	logger  *slog.Logger
}

// NewItineraryHandler wires the handler. quota and leads may be nil when
// Redis or Postgres are not configured.
func NewItineraryHandler(planner Planner, quota QuotaConsumer, leads LeadReader, baseURL string, logger *slog.Logger) *ItineraryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ItineraryHandler{planner: planner, quota: quota, leads: leads, baseURL: baseURL, logger: logger}
}

type itineraryResp struct {
	ID          string                  `json:"id,omitempty"`
	Itinerary   *itinerary.Itinerary    `json:"itinerary"`
	Destination *enrichment.Destination `json:"destination,omitempty"`
	ShareURL    string                  `json:"share_url,omitempty"`
	PDFURL      string                  `json:"pdf_url,omitempty"`
	CreatedAt   *time.Time              `json:"created_at,omitempty"`
}

// Create handles POST /api/itineraries.
func (h *ItineraryHandler) Create(c *gin.Context) {
	var req itinerary.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if req.Email == "" {
		req.Email = middleware.CallerEmail(c)
	}
	if err := req.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	if h.quota != nil {
		remaining, err := h.quota.Consume(c.Request.Context(), h.clientKey(c))
		switch {
		case errors.Is(err, quota.ErrQuotaExceeded):
			writeGenerationError(c, err)
			return
		case err != nil:
			// Fail open: a quota store outage must not block generation.
			h.logger.Warn("quota check failed", "error", err)
		case remaining >= 0:
			c.Header("X-Quota-Remaining", strconv.Itoa(remaining))
		}
	}

	res, err := h.planner.Generate(c.Request.Context(), req)
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	resp := itineraryResp{ID: res.LeadID, Itinerary: res.Itinerary, Destination: res.Destination}
	if res.LeadID != "" {
		resp.ShareURL = h.baseURL + "/api/itineraries/" + res.LeadID
		resp.PDFURL = resp.ShareURL + "/pdf"
	}
	writeJSON(c, http.StatusOK, resp)
}

// Quota handles GET /api/quota: today's remaining generations for the caller.
func (h *ItineraryHandler) Quota(c *gin.Context) {
	remaining := -1
	if h.quota != nil {
		n, err := h.quota.Remaining(c.Request.Context(), h.clientKey(c))
		if err != nil {
			h.logger.Warn("quota lookup failed", "error", err)
			writeError(c, http.StatusServiceUnavailable, "quota unavailable")
			return
		}
		remaining = n
	}
	if remaining >= 0 {
		c.Header("X-Quota-Remaining", strconv.Itoa(remaining))
	}
	writeJSON(c, http.StatusOK, quotaResp{Remaining: remaining, Limited: remaining >= 0})
}

type quotaResp struct {
	Remaining int  `json:"remaining"`
	Limited   bool `json:"limited"`
}

// Get handles GET /api/itineraries/:id, with ?format=markdown for a text rendering.
func (h *ItineraryHandler) Get(c *gin.Context) {
	l, ok := h.load(c)
	if !ok {
		return
	}
	if c.Query("format") == "markdown" {
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(itinerary.RenderMarkdown(&l.Itinerary)))
		return
	}
	created := l.CreatedAt
	writeJSON(c, http.StatusOK, itineraryResp{
		ID:        l.ID,
		Itinerary: &l.Itinerary,
		ShareURL:  h.baseURL + "/api/itineraries/" + l.ID,
		PDFURL:    h.baseURL + "/api/itineraries/" + l.ID + "/pdf",
		CreatedAt: &created,
	})
}

// PDF handles GET /api/itineraries/:id/pdf.
func (h *ItineraryHandler) PDF(c *gin.Context) {
	l, ok := h.load(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePDF(&buf, &l.Itinerary, h.baseURL+"/api/itineraries/"+l.ID); err != nil {
		h.logger.Error("pdf export failed", "lead_id", l.ID, "error", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="itinerary-`+l.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *ItineraryHandler) load(c *gin.Context) (*lead.Lead, bool) {
	if h.leads == nil {
		writeError(c, http.StatusNotFound, lead.ErrNotFound.Error())
		return nil, false
	}
	l, err := h.leads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeLeadError(c, err)
		return nil, false
	}
	return l, true
}

// clientKey identifies the caller for quota purposes: the Firebase UID when
// the route is authenticated, otherwise the client IP.
func (h *ItineraryHandler) clientKey(c *gin.Context) string {
	if uid := middleware.CallerUID(c); uid != "" {
		return "uid:" + uid
	}
	return "ip:" + c.ClientIP()
}
