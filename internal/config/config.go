// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

const (
	ResolverKeyword = "keyword"
	ResolverRemote  = "remote"

	TransportEmailJS = "emailjs"
	TransportSMTP    = "smtp"
)

// Config holds the configuration for the portfolio server.
// Environment variables are parsed with the PORTFOLIO_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`
	HTTPPort    int         `envconfig:"HTTP_PORT" default:"8080"`

	// Content document; empty uses the embedded one
	ContentPath string `envconfig:"CONTENT_PATH" default:""`

	// Chat
	Resolver       string        `envconfig:"RESOLVER" default:"keyword"`
	GeminiAPIKey   string        `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel    string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	GeminiBaseURL  string        `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	ChatTimeout    time.Duration `envconfig:"CHAT_TIMEOUT" default:"15s"`
	ChatReplyDelay time.Duration `envconfig:"CHAT_REPLY_DELAY" default:"0s"`

	// Contact
	ContactTransport  string        `envconfig:"CONTACT_TRANSPORT" default:"emailjs"`
	ContactTimeout    time.Duration `envconfig:"CONTACT_TIMEOUT" default:"10s"`
	EmailJSServiceID  string        `envconfig:"EMAILJS_SERVICE_ID" default:""`
	EmailJSTemplateID string        `envconfig:"EMAILJS_TEMPLATE_ID" default:""`
	EmailJSPublicKey  string        `envconfig:"EMAILJS_PUBLIC_KEY" default:""`
	EmailJSPrivateKey string        `envconfig:"EMAILJS_PRIVATE_KEY" default:""`
	EmailJSBaseURL    string        `envconfig:"EMAILJS_BASE_URL" default:"https://api.emailjs.com"`
	SMTPHost          string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort          string        `envconfig:"SMTP_PORT" default:"587"`
	SMTPUser          string        `envconfig:"SMTP_USER" default:""`
	SMTPPass          string        `envconfig:"SMTP_PASS" default:""`
	SMTPTo            string        `envconfig:"TO_EMAIL" default:""`

	// Sessions
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"2h"`
	MaxSessions int           `envconfig:"MAX_SESSIONS" default:"10000"`

	// Analytics and admin
	DBPath          string        `envconfig:"DB_PATH" default:"portfolio.db"`
	Retention       time.Duration `envconfig:"RETENTION" default:"8760h"`
	AdminUsername   string        `envconfig:"ADMIN_USERNAME" default:""`
	AdminPassword   string        `envconfig:"ADMIN_PASSWORD" default:""`
	TrackingEnabled bool          `envconfig:"TRACKING_ENABLED" default:"true"`
}

// legacyEnv holds the unprefixed variables the site has always read.
// A prefixed value wins over its legacy twin.
type legacyEnv struct {
	Port          int    `envconfig:"PORT"`
	AdminUsername string `envconfig:"ADMIN_USERNAME"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
	SMTPHost      string `envconfig:"SMTP_HOST"`
	SMTPPort      string `envconfig:"SMTP_PORT"`
	SMTPUser      string `envconfig:"SMTP_USER"`
	SMTPPass      string `envconfig:"SMTP_PASS"`
	SMTPTo        string `envconfig:"TO_EMAIL"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
}

func (c *Config) applyLegacy(l legacyEnv) {
	unset := func(name string) bool {
		_, ok := os.LookupEnv("PORTFOLIO_" + name)
		return !ok
	}
	if l.Port != 0 && unset("HTTP_PORT") {
		c.HTTPPort = l.Port
	}
	strs := []struct {
		name string
		src  string
		dst  *string
	}{
		{"ADMIN_USERNAME", l.AdminUsername, &c.AdminUsername},
		{"ADMIN_PASSWORD", l.AdminPassword, &c.AdminPassword},
		{"SMTP_HOST", l.SMTPHost, &c.SMTPHost},
		{"SMTP_PORT", l.SMTPPort, &c.SMTPPort},
		{"SMTP_USER", l.SMTPUser, &c.SMTPUser},
		{"SMTP_PASS", l.SMTPPass, &c.SMTPPass},
		{"TO_EMAIL", l.SMTPTo, &c.SMTPTo},
		{"GEMINI_API_KEY", l.GeminiAPIKey, &c.GeminiAPIKey},
	}
	for _, s := range strs {
		if s.src != "" && unset(s.name) {
			*s.dst = s.src
		}
	}
}

// Validate rejects unknown resolver or transport names.
func (c *Config) Validate() error {
	switch c.Resolver {
	case ResolverKeyword, ResolverRemote:
	default:
		return fmt.Errorf("unsupported RESOLVER: %s", c.Resolver)
	}
	switch c.ContactTransport {
	case TransportEmailJS, TransportSMTP:
	default:
		return fmt.Errorf("unsupported CONTACT_TRANSPORT: %s", c.ContactTransport)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP_PORT: %d", c.HTTPPort)
	}
	return nil
}

// New creates a new Config by parsing environment variables
// Example: PORTFOLIO_RESOLVER=remote, PORTFOLIO_GEMINI_API_KEY=...
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PORTFOLIO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	var l legacyEnv
	if err := envconfig.Process("", &l); err != nil {
		return nil, fmt.Errorf("failed to process legacy environment variables: %w", err)
	}
	cfg.applyLegacy(l)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("resolver", cfg.Resolver).
		Bool("gemini_key_present", cfg.GeminiAPIKey != "").
		Str("contact_transport", cfg.ContactTransport).
		Dur("session_ttl", cfg.SessionTTL).
		Str("db_path", cfg.DBPath).
		Bool("tracking", cfg.TrackingEnabled).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing
func NewForTesting() *Config {
	return &Config{
		Environment:      EnvTesting,
		HTTPPort:         8080,
		Resolver:         ResolverKeyword,
		GeminiModel:      "gemini-1.5-flash",
		ChatTimeout:      time.Second,
		ContactTransport: TransportEmailJS,
		ContactTimeout:   time.Second,
		SessionTTL:       time.Hour,
		MaxSessions:      100,
		DBPath:           ":memory:",
		Retention:        365 * 24 * time.Hour,
		AdminUsername:    "admin",
		AdminPassword:    "secret",
		TrackingEnabled:  true,
	}
}
