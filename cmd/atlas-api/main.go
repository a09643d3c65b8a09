// README: Entry point; loads config, wires enrichment, model provider and storage, starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"atlas/internal/ai"
	"atlas/internal/config"
	"atlas/internal/enrichment"
	httptransport "atlas/internal/http"
	"atlas/internal/infra"
	"atlas/internal/maps"
	"atlas/internal/modules/lead"
	"atlas/internal/modules/quota"
	"atlas/internal/service"
)

func main() {
	if err := config.LoadDotEnv(""); err != nil {
		slog.Error("dotenv error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if missing := cfg.MissingEnrichmentKeys(); len(missing) > 0 {
		logger.Warn("enrichment keys not set; affected requests will fail", "missing", missing)
	}

	llm, closeLLM, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		logger.Error("llm provider init", "error", err)
		os.Exit(1)
	}
	defer closeLLM()

	outbound := &http.Client{Timeout: cfg.Enrichment.Timeout}
	enrichOpts := []enrichment.Option{
		enrichment.WithTimeout(cfg.Enrichment.Timeout),
		enrichment.WithLogger(logger),
	}
	if cfg.Enrichment.MapsKey != "" {
		insights, err := maps.NewInsightsService(cfg.Enrichment.MapsKey, logger)
		if err != nil {
			logger.Error("maps init", "error", err)
			os.Exit(1)
		}
		enrichOpts = append(enrichOpts, enrichment.WithInsights(insights))
	}
	enricher := enrichment.NewClient(
		enrichment.NewWeatherAPIClient(cfg.Enrichment.WeatherAPIKey, outbound),
		enrichment.NewExchangeRateClient(cfg.Enrichment.ExchangeRateKey, outbound),
		enrichOpts...,
	)

	plannerOpts := []service.PlannerOption{
		service.WithGenerationTimeout(cfg.LLM.GenerationTimeout),
		service.WithLogger(logger),
	}
	deps := httptransport.ServerDeps{
		BaseURL:     cfg.HTTP.PublicBaseURL,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		RateRPS:     cfg.HTTP.RateRPS,
		RateBurst:   cfg.HTTP.RateBurst,
		Logger:      logger,
	}

	if cfg.DB.DSN != "" {
		if err := infra.Migrate(ctx, cfg.DB.DSN, logger); err != nil {
			logger.Error("migrations", "error", err)
			os.Exit(1)
		}
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Error("database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		leadSvc := lead.NewService(lead.NewStore(dbPool))
		plannerOpts = append(plannerOpts, service.WithLeadRecorder(leadSvc))
		deps.Leads = leadSvc
	} else {
		logger.Warn("ATLAS_DB_DSN not set; leads will not be recorded")
	}

	if cfg.Redis.Addr != "" && cfg.DailyQuota > 0 {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Error("redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		deps.Quota = quota.NewService(quota.NewStore(redisClient), cfg.DailyQuota)
	}

	if cfg.Firebase.ProjectID != "" {
		verifier, err := infra.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			logger.Error("firebase init", "error", err)
			os.Exit(1)
		}
		deps.Verifier = verifier
	}

	deps.Planner = service.NewTripPlanner(enricher, llm, plannerOpts...)

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httptransport.NewServer(deps).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr, "llm_provider", cfg.LLM.Provider)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}

// writeTimeout covers one generation: up to three sequential enrichment calls
// (weather, exchange rate, insights) and the model call, plus slack.
func writeTimeout(cfg config.Config) time.Duration {
	return 3*cfg.Enrichment.Timeout + cfg.LLM.GenerationTimeout + 10*time.Second
}
