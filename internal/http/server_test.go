package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"atlas/internal/infra"
	"atlas/internal/itinerary"
	"atlas/internal/modules/lead"
	"atlas/internal/service"
)

type nopPlanner struct{}

func (nopPlanner) Generate(context.Context, itinerary.TripRequest) (*service.Result, error) {
	return &service.Result{Itinerary: &itinerary.Itinerary{}}, nil
}

type nopLeads struct{}

func (nopLeads) Get(context.Context, string) (*lead.Lead, error) { return nil, lead.ErrNotFound }
func (nopLeads) List(context.Context, int) ([]lead.Summary, error) { return nil, nil }

type denyVerifier struct{}

func (denyVerifier) VerifyIDToken(context.Context, string) (*infra.IDToken, error) {
	return &infra.IDToken{UID: "u", Claims: map[string]interface{}{}}, nil
}

func serve(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewServer(ServerDeps{Planner: nopPlanner{}}).Routes()
	if w := serve(h, http.MethodGet, "/health", nil); w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Fatalf("unexpected health response %d %q", w.Code, w.Body.String())
	}
}

func TestRoutes_AdminOnlyWithFirebase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	without := NewServer(ServerDeps{Planner: nopPlanner{}, Leads: nopLeads{}}).Routes()
	if w := serve(without, http.MethodGet, "/api/admin/leads", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected admin route to be absent, got %d", w.Code)
	}

	with := NewServer(ServerDeps{Planner: nopPlanner{}, Leads: nopLeads{}, Verifier: denyVerifier{}}).Routes()
	if w := serve(with, http.MethodGet, "/api/admin/leads", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := serve(with, http.MethodGet, "/api/admin/leads", map[string]string{"Authorization": "Bearer t"}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", w.Code)
	}
}

func TestRoutes_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewServer(ServerDeps{Planner: nopPlanner{}, CORSOrigins: []string{"https://app.example.com"}}).Routes()

	w := serve(h, http.MethodOptions, "/api/itineraries", map[string]string{
		"Origin":                        "https://app.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected allowed origin, got %q", got)
	}

	w = serve(h, http.MethodGet, "/health", map[string]string{"Origin": "https://evil.example.com"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestRoutes_QuotaWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewServer(ServerDeps{Planner: nopPlanner{}, Verifier: denyVerifier{}}).Routes()
	if w := serve(h, http.MethodGet, "/api/quota", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := serve(h, http.MethodGet, "/api/quota", map[string]string{"Authorization": "Bearer t"}); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for signed-in caller, got %d", w.Code)
	}
}
