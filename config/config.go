package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Email deliverability modes.
const (
	DeliverabilityRelaxed = "relaxed"
	DeliverabilityStrict  = "strict"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// LLM providers.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderOff        = "off"
)

type Config struct {
	Port    string
	DataDir string

	// Persistence
	StorageDriver string // file | postgres
	DBUrl         string

	// Validation behavior
	EmailDeliverability   string // relaxed | strict
	DefaultRegion         string // ISO 3166-1 alpha-2 hint for national phone numbers
	NominatimBaseURL      string
	GeocodeTimeoutSeconds int

	// LLM Configuration
	LLMProvider       string // gemini | openrouter | off
	GeminiAPIKey      string
	GeminiModel       string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
	LLMTemperature    float64
	QuestionsPerTopic int
	MaxTopics         int
	EvalAnswers       bool

	// Session Configuration
	SessionSecret     string
	SessionTTLMinutes int
	AdminToken        string

	LogLevel string // debug | info | warn | error

	CORSAllowedOrigins []string

	// SMTP Configuration (optional completion email)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string

	// Redis / Rate Limiting Configuration
	RedisURL               string
	RedisPassword          string
	RateLimitWindowSeconds int
	RateLimitThreshold     int
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production if the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		DataDir: getEnv("DATA_DIR", "data"),

		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageFile)),
		DBUrl:         getEnv("DATABASE_URL", ""),

		EmailDeliverability:   strings.ToLower(getEnv("EMAIL_DELIVERABILITY", DeliverabilityRelaxed)),
		DefaultRegion:         strings.ToUpper(getEnv("DEFAULT_REGION", "US")),
		NominatimBaseURL:      strings.TrimRight(getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"), "/"),
		GeocodeTimeoutSeconds: getEnvInt("GEOCODE_TIMEOUT_SECONDS", 8),

		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: strings.TrimRight(getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"), "/"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
		LLMTemperature:    getEnvFloat("LLM_TEMPERATURE", 0.2),
		QuestionsPerTopic: getEnvInt("QUESTIONS_PER_TOPIC", 3),
		MaxTopics:         getEnvInt("MAX_TOPICS", 2),
		EvalAnswers:       getEnvBool("EVAL_ANSWERS", true),

		SessionSecret:     getEnv("SESSION_SECRET", ""),
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),
		AdminToken:        getEnv("ADMIN_TOKEN", ""),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),

		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@talentscout.dev"),

		RedisURL:               getEnv("REDIS_URL", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitThreshold:     getEnvInt("RATE_LIMIT_THRESHOLD", 60),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Non-fatal configuration gaps are logged so a bare local run still works.
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = uuid.NewString()
		log.Println("WARNING: SESSION_SECRET not set. Session tokens will not survive a restart.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.LLMProvider != ProviderOff && cfg.apiKeyForProvider() == "" {
		log.Printf("WARNING: no API key configured for provider %q. Assessment will use fallback questions only.", cfg.LLMProvider)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.EmailDeliverability {
	case DeliverabilityRelaxed, DeliverabilityStrict:
	default:
		return fmt.Errorf("invalid EMAIL_DELIVERABILITY %q: must be %q or %q", c.EmailDeliverability, DeliverabilityRelaxed, DeliverabilityStrict)
	}

	switch c.StorageDriver {
	case StorageFile:
	case StoragePostgres:
		if c.DBUrl == "" {
			return fmt.Errorf("STORAGE_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: must be %q or %q", c.StorageDriver, StorageFile, StoragePostgres)
	}

	switch c.LLMProvider {
	case ProviderGemini, ProviderOpenRouter, ProviderOff:
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q: must be %q, %q or %q", c.LLMProvider, ProviderGemini, ProviderOpenRouter, ProviderOff)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q: must be debug, info, warn or error", c.LogLevel)
	}

	if len(c.DefaultRegion) != 2 {
		return fmt.Errorf("invalid DEFAULT_REGION %q: must be an ISO 3166-1 alpha-2 code", c.DefaultRegion)
	}

	// The assessment asks 3-5 questions per technology.
	if c.QuestionsPerTopic < 3 {
		c.QuestionsPerTopic = 3
	}
	if c.QuestionsPerTopic > 5 {
		c.QuestionsPerTopic = 5
	}
	if c.MaxTopics < 1 {
		c.MaxTopics = 1
	}
	if c.SessionTTLMinutes < 1 {
		c.SessionTTLMinutes = 60
	}

	return nil
}

func (c *Config) apiKeyForProvider() string {
	switch c.LLMProvider {
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	}
	return ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, strings.TrimRight(trimmed, "/"))
		}
	}
	return out
}
