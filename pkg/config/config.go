package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/brazucaphish/console/pkg/shared/kvs"
)

const (
	// RegisterFlowConfirm redirects to the confirmation page with the email prefilled.
	RegisterFlowConfirm = "confirm"
	// RegisterFlowReset resets the form and asks the user to check their inbox.
	RegisterFlowReset = "reset"
)

// Config represents the application configuration
type Config struct {
	Service ServiceConfig `yaml:"service" json:"service"`
	API     APIConfig     `yaml:"api" json:"api"`
	Locale  LocaleConfig  `yaml:"locale" json:"locale"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Auth    AuthConfig    `yaml:"auth" json:"auth"`
	Storage kvs.Config    `yaml:"storage" json:"storage"`
	Mail    MailConfig    `yaml:"mail" json:"mail"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ServiceConfig contains service-level settings shown in page titles
type ServiceConfig struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// APIConfig points the console at the BrazucaPhish backend
type APIConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout string `yaml:"timeout" json:"timeout"` // per-request timeout (default: "30s")
}

// GetTimeout returns the request timeout as a time.Duration
func (a APIConfig) GetTimeout() (time.Duration, error) {
	return time.ParseDuration(a.Timeout)
}

// LocaleConfig selects the fallback language
type LocaleConfig struct {
	Default string `yaml:"default" json:"default"` // "en" or "pt" (default: "en")
}

// ServerConfig contains web front end settings
type ServerConfig struct {
	Host         string          `yaml:"host" json:"host"`
	Port         int             `yaml:"port" json:"port"`
	CookieName   string          `yaml:"cookie_name" json:"cookie_name"`
	CookieSecure bool            `yaml:"cookie_secure" json:"cookie_secure"`
	RateLimit    RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

// Addr returns host:port
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RateLimitConfig limits form posts per browser session
type RateLimitConfig struct {
	Requests int    `yaml:"requests" json:"requests"` // posts allowed per window (0 disables)
	Window   string `yaml:"window" json:"window"`     // default: "1m"
}

// GetWindow returns the rate limit window as a time.Duration
func (r RateLimitConfig) GetWindow() (time.Duration, error) {
	return time.ParseDuration(r.Window)
}

// AuthConfig controls the auth form behavior
type AuthConfig struct {
	RegisterFlow  string `yaml:"register_flow" json:"register_flow"`   // "confirm" or "reset" (default: "confirm")
	RedirectDelay string `yaml:"redirect_delay" json:"redirect_delay"` // delay before success redirects (default: "1.5s")
}

// GetRedirectDelay returns the redirect delay as a time.Duration
func (a AuthConfig) GetRedirectDelay() (time.Duration, error) {
	return time.ParseDuration(a.RedirectDelay)
}

// MailConfig configures the link digest mailer
type MailConfig struct {
	Enabled    bool           `yaml:"enabled" json:"enabled"`
	SenderType string         `yaml:"sender_type" json:"sender_type"` // "smtp" or "sendgrid" (default: "smtp")
	From       string         `yaml:"from" json:"from"`
	FromName   string         `yaml:"from_name" json:"from_name"`
	DigestTo   string         `yaml:"digest_to" json:"digest_to"`
	SMTP       SMTPConfig     `yaml:"smtp" json:"smtp"`
	SendGrid   SendGridConfig `yaml:"sendgrid" json:"sendgrid"`
}

// SMTPConfig contains SMTP server settings
type SMTPConfig struct {
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	TLS      bool   `yaml:"tls" json:"tls"`           // implicit TLS (port 465)
	StartTLS bool   `yaml:"starttls" json:"starttls"` // upgrade with STARTTLS (port 587)
}

// SendGridConfig contains SendGrid API settings
type SendGridConfig struct {
	APIKey      string `yaml:"api_key" json:"api_key"`
	EndpointURL string `yaml:"endpoint_url,omitempty" json:"endpoint_url,omitempty"` // optional override, mostly for tests
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string             `yaml:"level" json:"level"` // debug, info, warn, error
	Color bool               `yaml:"color" json:"color"`
	File  *FileLoggingConfig `yaml:"file,omitempty" json:"file,omitempty"`
}

// FileLoggingConfig enables rotated file logs
type FileLoggingConfig struct {
	Path       string `yaml:"path" json:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Validate validates the configuration. Defaults must already be applied.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrAPIBaseURLRequired
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIBaseURL, c.API.BaseURL)
	}

	if _, err := c.API.GetTimeout(); err != nil {
		return fmt.Errorf("%w: api.timeout: %v", ErrInvalidDuration, err)
	}
	if _, err := c.Auth.GetRedirectDelay(); err != nil {
		return fmt.Errorf("%w: auth.redirect_delay: %v", ErrInvalidDuration, err)
	}
	if _, err := c.Server.RateLimit.GetWindow(); err != nil {
		return fmt.Errorf("%w: server.rate_limit.window: %v", ErrInvalidDuration, err)
	}

	switch c.Auth.RegisterFlow {
	case RegisterFlowConfirm, RegisterFlowReset:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidRegisterFlow, c.Auth.RegisterFlow)
	}

	switch c.Locale.Default {
	case "en", "pt":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLocale, c.Locale.Default)
	}

	switch c.Storage.Type {
	case "memory", "leveldb":
	case "redis":
		if c.Storage.Redis.Addr == "" {
			return ErrRedisAddrRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStorageType, c.Storage.Type)
	}

	return c.Mail.validate()
}

func (m MailConfig) validate() error {
	if !m.Enabled {
		return nil
	}
	var errs []error
	if m.DigestTo == "" {
		errs = append(errs, ErrMailDigestToRequired)
	}
	switch m.SenderType {
	case "smtp":
		if m.SMTP.Host == "" {
			errs = append(errs, ErrSMTPHostRequired)
		}
	case "sendgrid":
		if m.SendGrid.APIKey == "" {
			errs = append(errs, ErrSendGridAPIKeyRequired)
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidSenderType, m.SenderType))
	}
	return errors.Join(errs...)
}
