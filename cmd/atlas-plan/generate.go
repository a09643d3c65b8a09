package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"atlas/internal/ai"
	"atlas/internal/config"
	"atlas/internal/enrichment"
	"atlas/internal/export"
	"atlas/internal/itinerary"
	"atlas/internal/maps"
	"atlas/internal/service"
)

type generateFlags struct {
	req     itinerary.TripRequest
	format  string
	out     string
	verbose bool
}

func newGenerateCmd() *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate <destination>",
		Short: "Generate an itinerary for a destination",
		Example: `  atlas-plan generate "Kyoto" --start 2025-04-01 --end 2025-04-04 --interests temples,food
  atlas-plan generate "Lisbon" --duration "3 days" --format pdf --out lisbon.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.req.Destination = args[0]
			return runGenerate(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	fl.StringVar(&f.req.EndDate, "end", "", "end date (YYYY-MM-DD)")
	fl.StringVar(&f.req.Duration, "duration", "", `trip length when no dates are given, e.g. "5 days"`)
	fl.StringVar(&f.req.Budget, "budget", "", "budget level (budget, moderate, luxury)")
	fl.IntVar(&f.req.BudgetAmount, "budget-amount", 0, "total budget in USD")
	fl.StringVar(&f.req.Accommodation, "accommodation", "", "preferred accommodation")
	fl.StringVar(&f.req.Travelers, "travelers", "", "who is travelling (solo, couple, family...)")
	fl.IntVar(&f.req.NumberOfTravelers, "travelers-count", 0, "number of travelers")
	fl.StringVar(&f.req.DietaryPreference, "dietary", "", "dietary preference")
	fl.StringSliceVar(&f.req.Interests, "interests", nil, "comma-separated interests")
	fl.StringVar(&f.req.TravelStyle, "style", "", "travel style")
	fl.StringVar(&f.format, "format", "markdown", "output format: markdown, json or pdf")
	fl.StringVarP(&f.out, "out", "o", "", "write output to a file instead of stdout")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log enrichment and generation steps")
	return cmd
}

func runGenerate(cmd *cobra.Command, f *generateFlags) error {
	switch f.format {
	case "markdown", "json", "pdf":
	default:
		return fmt.Errorf("unknown format %q", f.format)
	}
	if f.format == "pdf" && f.out == "" {
		return fmt.Errorf("pdf output needs --out")
	}
	if err := f.req.Validate(); err != nil {
		return err
	}

	if err := config.LoadDotEnv(""); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	ctx := cmd.Context()
	llm, closeLLM, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	defer closeLLM()

	outbound := &http.Client{Timeout: cfg.Enrichment.Timeout}
	opts := []enrichment.Option{enrichment.WithTimeout(cfg.Enrichment.Timeout), enrichment.WithLogger(logger)}
	if cfg.Enrichment.MapsKey != "" {
		insights, err := maps.NewInsightsService(cfg.Enrichment.MapsKey, logger)
		if err != nil {
			return err
		}
		opts = append(opts, enrichment.WithInsights(insights))
	}
	enricher := enrichment.NewClient(
		enrichment.NewWeatherAPIClient(cfg.Enrichment.WeatherAPIKey, outbound),
		enrichment.NewExchangeRateClient(cfg.Enrichment.ExchangeRateKey, outbound),
		opts...,
	)

	planner := service.NewTripPlanner(enricher, llm,
		service.WithGenerationTimeout(cfg.LLM.GenerationTimeout),
		service.WithLogger(logger),
	)
	res, err := planner.Generate(ctx, f.req)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	return writeItinerary(w, f.format, res.Itinerary)
}

func writeItinerary(w io.Writer, format string, it *itinerary.Itinerary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(it)
	case "pdf":
		return export.WritePDF(w, it, "")
	default:
		_, err := io.WriteString(w, itinerary.RenderMarkdown(it))
		return err
	}
}
