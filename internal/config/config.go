package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultDBDriver     = "sqlite"
	defaultDBConnection = "./instance/database.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	AppURL      string
	Port        string
	AppTagline  string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver       string
	DBConnection   string
	DBMaxOpenConns int

	// Server
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	MaxUploadBytes    int64

	// Admin session
	SessionSecret     string
	SessionExpiry     time.Duration
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	// Booking handoff
	OperatorName     string
	OperatorWhatsApp string

	// Email (booking notifications, optional)
	EmailFrom    string
	NotifyEmail  string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage: "local" writes under UploadDir, "s3" uses any S3-compatible service
	StorageDriver string
	UploadDir     string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string // Optional: for S3-compatible services (MinIO, R2, etc.)
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "Hair Studio"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		AppURL:      envRequired("APP_URL"), // Required: base URL for sitemap links
		Port:        envString("PORT", "8000"),
		AppTagline:  envString("APP_TAGLINE", "Cuts, colour and care"),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:       envString("DB_DRIVER", defaultDBDriver),
		DBConnection:   envString("DB_CONNECTION", defaultDBConnection),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 4),

		// Server
		ReadHeaderTimeout: envDuration("HTTP_READ_HEADER_TIMEOUT", 10*time.Second),
		ReadTimeout:       envDuration("HTTP_READ_TIMEOUT", 60*time.Second),
		WriteTimeout:      envDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:       envDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
		ShutdownTimeout:   envDuration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second),
		MaxUploadBytes:    envInt64("MAX_UPLOAD_BYTES", 16<<20), // 16 MB

		// Admin session
		SessionSecret:     envRequired("SESSION_SECRET"),
		SessionExpiry:     envDuration("SESSION_EXPIRY", 24*time.Hour),
		AdminUsername:     envRequired("ADMIN_USERNAME"),
		AdminPassword:     envString("ADMIN_PASSWORD", ""),
		AdminPasswordHash: envString("ADMIN_PASSWORD_HASH", ""),

		// Booking handoff
		OperatorName:     envString("OPERATOR_NAME", "Arpit"),
		OperatorWhatsApp: envRequired("OPERATOR_WHATSAPP"),

		// Email
		EmailFrom:    envString("EMAIL_FROM", "bookings@example.com"),
		NotifyEmail:  envString("NOTIFY_EMAIL", ""),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage
		StorageDriver: envString("STORAGE_DRIVER", "local"),
		UploadDir:     envString("UPLOAD_DIR", "static/uploads"),
		S3Region:      envString("S3_REGION", ""),
		S3Bucket:      envString("S3_BUCKET", ""),
		S3AccessKey:   envString("S3_ACCESS_KEY", ""),
		S3SecretKey:   envString("S3_SECRET_KEY", ""),
		S3Endpoint:    envString("S3_ENDPOINT", ""),
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		slog.Error("config requires ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
		os.Exit(1)
	}

	if cfg.StorageDriver == "s3" {
		validateS3(cfg)
	}

	return cfg
}

// LoadDatabase reads only the database settings, for tooling that
// runs without the rest of the app configuration.
func LoadDatabase() (driver, connection string) {
	_ = godotenv.Load()
	return envString("DB_DRIVER", defaultDBDriver), envString("DB_CONNECTION", defaultDBConnection)
}

// validateS3 ensures the object storage settings are present when the s3 driver is selected.
func validateS3(cfg *Config) {
	if cfg.S3Region == "" || cfg.S3Bucket == "" {
		slog.Error("STORAGE_DRIVER=s3 requires S3_REGION and S3_BUCKET",
			"hint", "set STORAGE_DRIVER=local to keep uploads on disk")
		os.Exit(1)
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

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		slog.Warn("config invalid int64, using default", "key", key, "value", v, "default", def)
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

// SecureCookies reports whether cookies should carry the Secure flag.
// Can be forced off with COOKIE_INSECURE=true when running production builds over plain HTTP.
func (c *Config) SecureCookies() bool {
	return c.IsProduction() && !envBool("COOKIE_INSECURE", false)
}

// Sanitized returns a copy of the config with only public/safe fields.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:    c.AppName,
		AppEnv:     c.AppEnv,
		AppURL:     c.AppURL,
		Port:       c.Port,
		AppTagline: c.AppTagline,

		OperatorName: c.OperatorName,

		StorageDriver: c.StorageDriver,
		S3Endpoint:    c.S3Endpoint, // Needed for CSP policies
		S3Bucket:      c.S3Bucket,
		S3Region:      c.S3Region,
	}
}
