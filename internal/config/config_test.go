package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_URL", "https://salon.example")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "hunter22")
	t.Setenv("OPERATOR_WHATSAPP", "+15550001111")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
	assert.Equal(t, int64(16<<20), cfg.MaxUploadBytes)
	assert.Equal(t, 24*time.Hour, cfg.SessionExpiry)
	assert.Equal(t, "Arpit", cfg.OperatorName)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.SecureCookies())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "8")
	t.Setenv("SESSION_EXPIRY", "2h")
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	t.Setenv("COOKIE_INSECURE", "true")

	cfg := Load()

	assert.Equal(t, 8, cfg.DBMaxOpenConns)
	assert.Equal(t, 2*time.Hour, cfg.SessionExpiry)
	assert.Equal(t, int64(16<<20), cfg.MaxUploadBytes, "invalid values fall back to the default")
	assert.False(t, cfg.SecureCookies())
}

func TestSanitizedDropsSecrets(t *testing.T) {
	cfg := &Config{
		AppName:       "Hair Studio",
		SessionSecret: "s3cret",
		AdminPassword: "hunter22",
		ResendAPIKey:  "re_123",
		S3SecretKey:   "key",
		OperatorName:  "Arpit",
	}

	safe := cfg.Sanitized()

	assert.Equal(t, "Hair Studio", safe.AppName)
	assert.Equal(t, "Arpit", safe.OperatorName)
	assert.Empty(t, safe.SessionSecret)
	assert.Empty(t, safe.AdminPassword)
	assert.Empty(t, safe.ResendAPIKey)
	assert.Empty(t, safe.S3SecretKey)
}

func TestLoadDatabase(t *testing.T) {
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_CONNECTION", "postgres://localhost/salon")

	driver, connection := LoadDatabase()

	assert.Equal(t, "pgx", driver)
	assert.Equal(t, "postgres://localhost/salon", connection)
}
