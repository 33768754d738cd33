package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (driver switch via ENV, default: sqlite)
	DBDriver      string
	DBConnection  string
	MongoDatabase string

	// Ledger
	LedgerTimezone string // IANA zone that defines "today" for skip-logs

	// Security
	JWTSecret         string // Optional in development: bearer tokens are ignored when empty
	JWTExpiry         time.Duration
	SkipLogRateLimit  int
	SkipLogRateWindow time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN      string
	MetricsEnabled bool

	// Storage (S3-compatible archive for transaction exports)
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string        // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3LinkExpiry time.Duration // Expiry for presigned export links - default: 1 hour

	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Skipjar"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:  envString("APP_URL", "http://localhost:8090"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:      envString("DB_DRIVER", "sqlite"),
		DBConnection:  envString("DB_CONNECTION", "./data/skipjar.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)&_txlock=immediate"),
		MongoDatabase: envString("MONGO_DATABASE", "skipjar"),

		// Ledger
		LedgerTimezone: envString("LEDGER_TIMEZONE", "UTC"),

		// Security
		JWTSecret:         envString("JWT_SECRET", ""),
		JWTExpiry:         envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		SkipLogRateLimit:  envInt("SKIP_LOG_RATE_LIMIT", 30),
		SkipLogRateWindow: envDuration("SKIP_LOG_RATE_WINDOW", time.Minute),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN:      envString("SENTRY_DSN", ""),
		MetricsEnabled: envBool("METRICS_ENABLED", true),

		// Storage (only needed for `do audit export`)
		S3Region:     envString("S3_REGION", ""),
		S3Bucket:     envString("S3_BUCKET", ""),
		S3AccessKey:  envString("S3_ACCESS_KEY", ""),
		S3SecretKey:  envString("S3_SECRET_KEY", ""),
		S3Endpoint:   envString("S3_ENDPOINT", ""),
		S3LinkExpiry: envDuration("S3_LINK_EXPIRY", 1*time.Hour),

		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production deployments.
// Development allows some services (like email) to use fallback modes for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.JWTSecret == "" {
		slog.Error("production deployment requires JWT_SECRET",
			"hint", "set APP_ENV=development to accept anonymous and body-identified skips")
		os.Exit(1)
	}
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

// Location resolves LedgerTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.LedgerTimezone)
	if err != nil {
		slog.Warn("config invalid timezone, using UTC", "key", "LEDGER_TIMEZONE", "value", c.LedgerTimezone)
		return time.UTC
	}
	return loc
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
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

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
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
