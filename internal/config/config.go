// README: Config loader with env defaults for HTTP, storage, model providers, enrichment and limits.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type HTTPConfig struct {
	Addr          string
	PublicBaseURL string
	CORSOrigins   []string
	RateRPS       float64
	RateBurst     int
}

type LLMConfig struct {
	Provider          string
	Model             string
	GeminiKey         string
	OpenAIKey         string
	OpenAIEndpoint    string
	GenerationTimeout time.Duration
}

type EnrichmentConfig struct {
	WeatherAPIKey   string
	ExchangeRateKey string
	MapsKey         string
	Timeout         time.Duration
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

type Config struct {
	HTTP HTTPConfig
	DB   struct {
		// DSN is optional; without it leads are not recorded.
		DSN string
	}
	Redis struct {
		// Addr is optional; without it the daily quota is not enforced.
		Addr string
	}
	LLM        LLMConfig
	Enrichment EnrichmentConfig
	Firebase   FirebaseConfig
	DailyQuota int
	LogLevel   string
}

// LoadDotEnv loads a .env file into the environment when one exists.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables. It returns an error
// naming every required variable that is missing or malformed.
func Load() (Config, error) {
	var cfg Config
	var problems []string

	cfg.HTTP.Addr = envOrDefault("ATLAS_HTTP_ADDR", ":8080")
	cfg.HTTP.PublicBaseURL = strings.TrimRight(envOrDefault("ATLAS_PUBLIC_BASE_URL", "http://localhost:8080"), "/")
	cfg.HTTP.CORSOrigins = splitCSV(envOrDefault("ATLAS_CORS_ORIGINS", "http://localhost:5173"))
	cfg.HTTP.RateRPS = envOrDefaultFloat("ATLAS_RATE_RPS", 1)
	cfg.HTTP.RateBurst = envOrDefaultInt("ATLAS_RATE_BURST", 5)

	cfg.DB.DSN = os.Getenv("ATLAS_DB_DSN")
	cfg.Redis.Addr = os.Getenv("ATLAS_REDIS_ADDR")

	cfg.LLM.Provider = strings.ToLower(envOrDefault("ATLAS_LLM_PROVIDER", ProviderGemini))
	cfg.LLM.Model = os.Getenv("ATLAS_LLM_MODEL")
	cfg.LLM.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.OpenAIEndpoint = os.Getenv("OPENAI_ENDPOINT")
	cfg.LLM.GenerationTimeout = envOrDefaultDuration("ATLAS_GENERATION_TIMEOUT", 60*time.Second)
	switch cfg.LLM.Provider {
	case ProviderGemini:
		if cfg.LLM.GeminiKey == "" {
			problems = append(problems, "GEMINI_API_KEY is required")
		}
	case ProviderOpenAI:
		if cfg.LLM.OpenAIKey == "" {
			problems = append(problems, "OPENAI_API_KEY is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("ATLAS_LLM_PROVIDER %q is not one of gemini, openai", cfg.LLM.Provider))
	}

	// Enrichment keys are checked per request so a missing key surfaces as a
	// configuration error on the failing call.
	cfg.Enrichment.WeatherAPIKey = os.Getenv("WEATHERAPI_KEY")
	cfg.Enrichment.ExchangeRateKey = os.Getenv("EXCHANGERATE_API_KEY")
	cfg.Enrichment.MapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Enrichment.Timeout = envOrDefaultDuration("ATLAS_OUTBOUND_TIMEOUT", 20*time.Second)

	cfg.Firebase.ProjectID = os.Getenv("FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")

	cfg.DailyQuota = envOrDefaultInt("ATLAS_DAILY_QUOTA", 20)
	cfg.LogLevel = envOrDefault("ATLAS_LOG_LEVEL", "info")

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// MissingEnrichmentKeys lists the enrichment variables that are unset.
func (c Config) MissingEnrichmentKeys() []string {
	var out []string
	if c.Enrichment.WeatherAPIKey == "" {
		out = append(out, "WEATHERAPI_KEY")
	}
	if c.Enrichment.ExchangeRateKey == "" {
		out = append(out, "EXCHANGERATE_API_KEY")
	}
	return out
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
