package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

type Config struct {
	Env      string `envconfig:"APP_ENV" default:"local"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Port     string `envconfig:"PORT" default:"8000"`

	Database DatabaseConfig
	Server   ServerConfig

	// Served by GET /api/settings until a settings document exists.
	DefaultEmail string `envconfig:"DEFAULT_EMAIL" default:"doctor@example.com"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
	RateLimit   RateLimitConfig
	SMTP        SMTPConfig
}

type DatabaseConfig struct {
	Driver  string        `envconfig:"STORE_DRIVER" default:"mongo"`
	URL     string        `envconfig:"DATABASE_URL" default:"mongodb://localhost:27017"`
	Name    string        `envconfig:"DATABASE_NAME" default:"doctor_portfolio"`
	Timeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
}

type ServerConfig struct {
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

// RateLimitConfig bounds write requests. RPS of zero disables the limiter.
type RateLimitConfig struct {
	RPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	Burst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`
}

// SMTPConfig enables appointment notification mail when Host is set.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// Load reads an optional .env file and then the process environment.
// It reports whether a .env file was found.
func Load() (*Config, bool, error) {
	dotenv := godotenv.Load() == nil
	applyLegacyNames()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, dotenv, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.CORSOrigins = cleanOrigins(cfg.CORSOrigins)
	if err := cfg.Validate(); err != nil {
		return nil, dotenv, err
	}
	return &cfg, dotenv, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: want %q or %q", c.Database.Driver, DriverMongo, DriverMemory)
	}
	if c.Database.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive, got %s", c.Database.Timeout)
	}
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must not be empty")
	}
	for _, o := range c.CORSOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("invalid CORS origin %q: want \"*\" or an http:// or https:// origin", o)
		}
	}
	return nil
}

// cleanOrigins trims each CORS_ORIGINS entry and drops empty ones, so
// "https://a.com, https://b.com," is read as two origins.
func cleanOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// AllowAllOrigins reports whether CORS_ORIGINS contains the wildcard.
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// legacyNames maps older variable names onto the current ones.
var legacyNames = map[string]string{
	"API_PORT":       "PORT",
	"MONGO_URI":      "DATABASE_URL",
	"MONGO_DATABASE": "DATABASE_NAME",
}

func applyLegacyNames() {
	for legacy, current := range legacyNames {
		if _, set := os.LookupEnv(current); set {
			continue
		}
		if v := os.Getenv(legacy); v != "" {
			os.Setenv(current, v)
		}
	}
}
