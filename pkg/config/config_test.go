package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	cfg := Default()
	cfg.API.BaseURL = "http://localhost:5000"
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "/api" },
			wantErr: ErrInvalidAPIBaseURL,
		},
		{
			name:    "bad timeout",
			mutate:  func(c *Config) { c.API.Timeout = "soon" },
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "bad redirect delay",
			mutate:  func(c *Config) { c.Auth.RedirectDelay = "1.5" },
			wantErr: ErrInvalidDuration,
		},
		{
			name:    "unknown register flow",
			mutate:  func(c *Config) { c.Auth.RegisterFlow = "magic" },
			wantErr: ErrInvalidRegisterFlow,
		},
		{
			name:    "unknown locale",
			mutate:  func(c *Config) { c.Locale.Default = "ja" },
			wantErr: ErrInvalidLocale,
		},
		{
			name:    "unknown storage",
			mutate:  func(c *Config) { c.Storage.Type = "etcd" },
			wantErr: ErrInvalidStorageType,
		},
		{
			name:    "redis without addr",
			mutate:  func(c *Config) { c.Storage.Type = "redis" },
			wantErr: ErrRedisAddrRequired,
		},
		{
			name: "mail without recipient",
			mutate: func(c *Config) {
				c.Mail.Enabled = true
				c.Mail.SMTP.Host = "smtp.example.com"
			},
			wantErr: ErrMailDigestToRequired,
		},
		{
			name: "sendgrid without key",
			mutate: func(c *Config) {
				c.Mail.Enabled = true
				c.Mail.DigestTo = "ops@example.com"
				c.Mail.SenderType = "sendgrid"
			},
			wantErr: ErrSendGridAPIKeyRequired,
		},
		{
			name: "disabled mail is not checked",
			mutate: func(c *Config) {
				c.Mail.SenderType = "carrier-pigeon"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMailConfig_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Mail.Enabled = true

	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrMailDigestToRequired)
	assert.ErrorIs(t, err, ErrSMTPHostRequired)
}
