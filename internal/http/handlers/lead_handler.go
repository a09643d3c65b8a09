// README: Admin lead listing handler.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	leads LeadReader
}

func NewLeadHandler(leads LeadReader) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// List handles GET /api/admin/leads?limit=N.
func (h *LeadHandler) List(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	leads, err := h.leads.List(c.Request.Context(), limit)
	if err != nil {
		writeLeadError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"leads": leads})
}
