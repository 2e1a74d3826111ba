package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// PlaceholderWeb3FormsKey is the access key shipped in the sample .env.
const PlaceholderWeb3FormsKey = "YOUR_WEB3FORMS_ACCESS_KEY_HERE"

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"debug"`
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	// Web3Forms relay
	Web3FormsURL          string        `env:"WEB3FORMS_URL" envDefault:"https://api.web3forms.com/submit"`
	Web3FormsKey          string        `env:"WEB3FORMS_KEY" envDefault:"YOUR_WEB3FORMS_ACCESS_KEY_HERE"`
	RelayTimeout          time.Duration `env:"RELAY_TIMEOUT" envDefault:"0s"`
	SuccessDisplaySeconds int           `env:"SUCCESS_DISPLAY_SECONDS" envDefault:"5"`
	// Localization
	DefaultLanguage string `env:"DEFAULT_LANGUAGE" envDefault:"fr"`
	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:8080"`
	// Redis/Upstash Configuration
	UpstashRedisURL      string `env:"UPSTASH_REDIS_URL"`
	UpstashRedisPassword string `env:"UPSTASH_REDIS_PASSWORD"`
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`
	RateLimitContactThreshold int `env:"RATE_LIMIT_CONTACT_THRESHOLD" envDefault:"5"`
	RateLimitGlobalThreshold  int `env:"RATE_LIMIT_GLOBAL_THRESHOLD" envDefault:"100"`
	VisitorIdleMinutes        int `env:"VISITOR_IDLE_MINUTES" envDefault:"30"`
	// Logging
	LogFormat string `env:"LOG_FORMAT"`
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production when the file is absent)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Strip trailing slash to avoid double slashes when building absolute URLs
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")
	cfg.DefaultLanguage = strings.ToLower(strings.TrimSpace(cfg.DefaultLanguage))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !cfg.RelayConfigured() {
		log.Println("WARNING: WEB3FORMS_KEY not configured. Contact submissions will be rejected by the relay.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SuccessDisplaySeconds < 0 {
		return fmt.Errorf("SUCCESS_DISPLAY_SECONDS must not be negative, got %d", c.SuccessDisplaySeconds)
	}
	if c.RateLimitWindowSeconds <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive, got %d", c.RateLimitWindowSeconds)
	}
	if c.RelayTimeout < 0 {
		return fmt.Errorf("RELAY_TIMEOUT must not be negative, got %s", c.RelayTimeout)
	}
	return nil
}

// RelayConfigured reports whether a real Web3Forms access key is set.
func (c *Config) RelayConfigured() bool {
	return c.Web3FormsKey != "" && c.Web3FormsKey != PlaceholderWeb3FormsKey
}

// SuccessDisplay is how long the success banner stays before reverting.
func (c *Config) SuccessDisplay() time.Duration {
	return time.Duration(c.SuccessDisplaySeconds) * time.Second
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// SecureCookies reports whether cookies should carry the Secure flag.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.SiteURL, "https://")
}
