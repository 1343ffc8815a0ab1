// Package config loads the server configuration from the environment.
//
// A .env file in the working directory is loaded first, so local development
// needs no exported variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"

	"github.com/Zachkp/portfolio/internal/navigation"
)

// SMTP holds the outgoing mail account used by the relay.
type SMTP struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	To   string `env:"TO_EMAIL"`
}

// Configured reports whether credentials are present.
func (s SMTP) Configured() bool {
	return s.User != "" && s.Pass != ""
}

// Inbox is where contact messages go. It defaults to the sending account.
func (s SMTP) Inbox() string {
	if s.To != "" {
		return s.To
	}
	return s.User
}

// Navigation tunes the section navigation controller.
type Navigation struct {
	Mode           string        `env:"PORTFOLIO_NAV_MODE"        envDefault:"paged"`
	Cooldown       time.Duration `env:"PORTFOLIO_NAV_COOLDOWN"    envDefault:"1s"`
	WheelThreshold float64       `env:"PORTFOLIO_WHEEL_THRESHOLD" envDefault:"50"`
	SessionTTL     time.Duration `env:"PORTFOLIO_SESSION_TTL"     envDefault:"30m"`
}

// Admin holds dashboard credentials.
type Admin struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
}

// Config is the full server configuration.
type Config struct {
	Port        string        `env:"PORT"                   envDefault:"8080"`
	RelayURL    string        `env:"PORTFOLIO_RELAY_URL"`
	DBPath      string        `env:"PORTFOLIO_DB_PATH"      envDefault:"portfolio.db"`
	ContentPath string        `env:"PORTFOLIO_CONTENT_PATH"`
	StatusTTL   time.Duration `env:"PORTFOLIO_STATUS_TTL"   envDefault:"5s"`
	LogLevel    string        `env:"LOG_LEVEL"              envDefault:"info"`
	GinMode     string        `env:"GIN_MODE"               envDefault:"debug"`

	SMTP       SMTP
	Navigation Navigation
	Admin      Admin
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c Config) Validate() error {
	if _, err := navigation.ParseMode(c.Navigation.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Navigation.Cooldown <= 0 {
		return fmt.Errorf("config: PORTFOLIO_NAV_COOLDOWN must be positive, got %s", c.Navigation.Cooldown)
	}
	if c.Navigation.WheelThreshold <= 0 {
		return fmt.Errorf("config: PORTFOLIO_WHEEL_THRESHOLD must be positive, got %v", c.Navigation.WheelThreshold)
	}
	return nil
}

// NavMode returns the parsed navigation mode.
func (c Config) NavMode() navigation.Mode {
	m, _ := navigation.ParseMode(c.Navigation.Mode)
	return m
}
