package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedKeys = []string{
	"APP_ENV", "LOG_LEVEL", "PORT", "API_PORT",
	"STORE_DRIVER", "DATABASE_URL", "DATABASE_NAME", "MONGO_URI", "MONGO_DATABASE", "STORE_TIMEOUT",
	"DEFAULT_EMAIL", "CORS_ORIGINS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM",
}

// clearEnv unsets every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URL)
	assert.Equal(t, "doctor_portfolio", cfg.Database.Name)
	assert.Equal(t, 5*time.Second, cfg.Database.Timeout)
	assert.Equal(t, "doctor@example.com", cfg.DefaultEmail)
	assert.True(t, cfg.AllowAllOrigins())
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("DEFAULT_EMAIL", "clinic@example.org")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SMTP_HOST", "smtp.example.org")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.Timeout)
	assert.Equal(t, "clinic@example.org", cfg.DefaultEmail)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.AllowAllOrigins())
	assert.True(t, cfg.SMTP.Enabled())
}

func TestLoadLegacyNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_PORT", "7070")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "dentist")

	cfg, _, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URL)
	assert.Equal(t, "dentist", cfg.Database.Name)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")

	_, _, err := Load()
	assert.ErrorContains(t, err, "invalid STORE_DRIVER")
}

func TestValidate(t *testing.T) {
	base := Config{
		Port:        "8000",
		Database:    DatabaseConfig{Driver: DriverMongo, Timeout: time.Second},
		CORSOrigins: []string{"*"},
	}
	assert.NoError(t, base.Validate())

	noTimeout := base
	noTimeout.Database.Timeout = 0
	assert.Error(t, noTimeout.Validate())

	noPort := base
	noPort.Port = ""
	assert.Error(t, noPort.Validate())

	badOrigin := base
	badOrigin.CORSOrigins = []string{" https://a.com"}
	assert.ErrorContains(t, badOrigin.Validate(), "invalid CORS origin")
}

func TestLoadTrimsCORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "https://a.com, https://b.com ,,")

	cfg, _, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, cfg.CORSOrigins)
	assert.False(t, cfg.AllowAllOrigins())
}

func TestLoadRejectsBadCORSOrigins(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"missing scheme", "https://a.com, b.com", `invalid CORS origin "b.com"`},
		{"only separators", " , ", "CORS_ORIGINS must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CORS_ORIGINS", tt.value)

			_, _, err := Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
