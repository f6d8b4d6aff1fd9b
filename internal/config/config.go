package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all runtime configuration, populated from environment
// variables. A .env file is loaded by main before parsing.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,notEmpty"`

	GitHubClientID     string `env:"GITHUB_CLIENT_ID,notEmpty"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET,notEmpty"`
	OAuthCallbackURL   string `env:"OAUTH_CALLBACK_URL" envDefault:"http://localhost:8080/auth/github/callback"`

	JWTSecret  string        `env:"JWT_SECRET,notEmpty"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// CommitRefreshInterval drives the background re-fetch of commit
	// windows that were recently used by a report.
	CommitRefreshInterval time.Duration `env:"COMMIT_REFRESH_INTERVAL" envDefault:"5m"`
	CommitCacheTTL        time.Duration `env:"COMMIT_CACHE_TTL" envDefault:"5m"`

	// Summarizer is optional; when the URL is empty, the export route's
	// improve flag is ignored.
	SummarizerURL    string `env:"SUMMARIZER_URL"`
	SummarizerAPIKey string `env:"SUMMARIZER_API_KEY"`

	ReportLocale string `env:"REPORT_LOCALE" envDefault:"pt-BR"`
	ReportTZ     string `env:"REPORT_TIMEZONE" envDefault:"America/Sao_Paulo"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured report time zone, falling back to UTC
// if the zone name is unknown on the host.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}
