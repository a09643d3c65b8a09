// README: API gateway; builds the gin engine, registers routes and wraps it with CORS.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"atlas/internal/http/handlers"
	"atlas/internal/http/middleware"
	"atlas/internal/infra"
)

type ServerDeps struct {
	Planner handlers.Planner
	// Quota, Leads and Verifier are optional.
	Quota    handlers.QuotaConsumer
	Leads    handlers.LeadReader
	Verifier infra.TokenVerifier

	BaseURL     string
	CORSOrigins []string
	RateRPS     float64
	RateBurst   int
	Logger      *slog.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Server{deps: deps}
}

// Routes returns the full HTTP handler.
func (s *Server) Routes() http.Handler {
	d := s.deps
	r := gin.New()
	r.Use(middleware.Logging(d.Logger), middleware.Recovery(d.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	itineraries := handlers.NewItineraryHandler(d.Planner, d.Quota, d.Leads, d.BaseURL, d.Logger)
	api := r.Group("/api")

	var create []gin.HandlerFunc
	if d.RateRPS > 0 {
		create = append(create, middleware.NewRateLimiter(d.RateRPS, d.RateBurst).Limit())
	}
	var identify []gin.HandlerFunc
	if d.Verifier != nil {
		identify = append(identify, middleware.OptionalAuth(d.Verifier))
	}
	create = append(append(create, identify...), itineraries.Create)
	api.POST("/itineraries", create...)
	api.GET("/quota", append(identify, itineraries.Quota)...)
	api.GET("/itineraries/:id", itineraries.Get)
	api.GET("/itineraries/:id/pdf", itineraries.PDF)

	if d.Verifier != nil && d.Leads != nil {
		admin := api.Group("/admin", middleware.Auth(d.Verifier), middleware.RequireRole("admin"))
		admin.GET("/leads", handlers.NewLeadHandler(d.Leads).List)
	}

	return cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Quota-Remaining", "Content-Disposition"},
	}).Handler(r)
}
