package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	TokenDeliveryCookie   = "cookie"
	TokenDeliveryRedirect = "redirect"

	StoreDriverDynamoDB = "dynamodb"
	StoreDriverMemory   = "memory"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string
	Debug   bool // expose internal error details in 500 responses

	// TrustProxyHeaders keys per-IP limits by X-Forwarded-For. Only enable behind a proxy that overwrites it.
	TrustProxyHeaders bool

	// URLs
	APIURL                  string // public base URL of this API, used for the OAuth redirect
	FrontendURL             string // allowed CORS origin
	FrontendRedirectSuccess string // where the browser lands after login

	// Session tokens
	JWTSecret       string
	SessionTokenTTL time.Duration
	TokenDelivery   string // "cookie" or "redirect"
	CookieDomain    string

	// OAuth
	GoogleClientID     string
	GoogleClientSecret string

	// Store (optional driver switch via ENV, default: dynamodb)
	StoreDriver          string
	TablePrefix          string
	AWSRegion            string
	AWSAccessKeyID       string
	AWSSecretAccessKey   string
	DynamoDBEndpoint     string // Optional: DynamoDB Local or other compatible endpoint
	DynamoDBCreateTables bool

	// LLM
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Quotas
	MaxRequestsPerDay int
	MinWardrobeItems  int

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	appEnv := envRequired("APP_ENV") // Required: 'development' or 'production'

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Wardrobe"),
		AppEnv:  appEnv,
		Port:    envString("PORT", "8080"),
		Debug:   envBool("DEBUG", false),

		TrustProxyHeaders: envBool("TRUST_PROXY_HEADERS", false),

		// URLs
		APIURL:                  strings.TrimRight(envString("API_URL", "http://localhost:8080"), "/"),
		FrontendURL:             envString("FRONTEND_URL", "http://localhost:3000"),
		FrontendRedirectSuccess: envString("FRONTEND_REDIRECT_SUCCESS", "http://localhost:3000/login-success"),

		// Session tokens
		JWTSecret:       envRequired("JWT_SECRET_KEY"),
		SessionTokenTTL: envDuration("SESSION_TOKEN_TTL", time.Hour),
		TokenDelivery:   envString("TOKEN_DELIVERY", TokenDeliveryCookie),
		CookieDomain:    envString("COOKIE_DOMAIN", ""),

		// OAuth
		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),

		// Store
		StoreDriver:          envString("STORE_DRIVER", StoreDriverDynamoDB),
		TablePrefix:          envString("TABLE_PREFIX", "dev"),
		AWSRegion:            envString("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:       envString("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:   envString("AWS_SECRET_ACCESS_KEY", ""),
		DynamoDBEndpoint:     envString("DYNAMODB_ENDPOINT", ""),
		DynamoDBCreateTables: envBool("DYNAMODB_CREATE_TABLES", appEnv == "development"),

		// LLM
		OpenAIAPIKey:  envString("OPENAI_API_KEY", ""),
		OpenAIModel:   envString("OPENAI_MODEL", "gpt-3.5-turbo"),
		OpenAIBaseURL: envString("OPENAI_BASE_URL", ""),

		// Quotas
		MaxRequestsPerDay: envInt("MAX_REQUESTS_PER_DAY", 10),
		MinWardrobeItems:  envInt("MIN_WARDROBE_ITEMS", 3),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.MaxRequestsPerDay < 1 {
		slog.Warn("MAX_REQUESTS_PER_DAY is below 1, every LLM request will be rejected", "value", cfg.MaxRequestsPerDay)
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the external collaborators are configured for production deployments.
// Development allows the memory store and a missing OpenAI key for local testing.
func validateProduction(cfg *Config) {
	for key, value := range map[string]string{
		"GOOGLE_CLIENT_ID":     cfg.GoogleClientID,
		"GOOGLE_CLIENT_SECRET": cfg.GoogleClientSecret,
		"OPENAI_API_KEY":       cfg.OpenAIAPIKey,
	} {
		if value == "" {
			slog.Error("production deployment requires "+key, "key", key)
			os.Exit(1)
		}
	}
	if cfg.TokenDelivery == TokenDeliveryCookie && cfg.CookieDomain == "" {
		slog.Error("production deployment with cookie token delivery requires COOKIE_DOMAIN",
			"hint", "set TOKEN_DELIVERY=redirect to hand the token to the frontend in the redirect URL")
		os.Exit(1)
	}
	if cfg.StoreDriver == StoreDriverMemory {
		slog.Warn("memory store in production, data is lost on restart")
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// TableName returns the environment-scoped name of a store table, e.g. "dev-trips".
func (c *Config) TableName(name string) string {
	if c.TablePrefix == "" {
		return name
	}
	return c.TablePrefix + "-" + name
}

// OAuthRedirectURL is the callback registered with the identity provider.
func (c *Config) OAuthRedirectURL() string {
	return c.APIURL + "/auth/callback"
}
