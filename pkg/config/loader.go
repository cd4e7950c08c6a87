package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sharedconfig "github.com/brazucaphish/console/pkg/shared/config"
	"gopkg.in/yaml.v3"
)

// Loader is an interface for loading configuration
type Loader interface {
	Load() (*Config, error)
}

// FileLoader loads configuration from a YAML or JSON file
type FileLoader struct {
	path string
}

// NewFileLoader creates a new FileLoader
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads, expands ${VAR} references, parses and validates the configuration file.
// The format is chosen by extension (.yaml, .yml or .json).
func (l *FileLoader) Load() (*Config, error) {
	cfg, err := l.Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation, for callers that override values first.
func (l *FileLoader) Read() (*Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigFileNotFound, l.path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	data = sharedconfig.ExpandEnvBytes(data)

	var cfg Config
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml, .json)", ext)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a configuration with every default applied and no API base URL.
// Callers running without a config file fill in BaseURL before validating.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills empty fields after flags have overridden a loaded config.
func ApplyDefaults(cfg *Config) {
	applyDefaults(cfg)
}

// applyDefaults sets default values for optional fields
func applyDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "BrazucaPhish"
	}

	if cfg.API.Timeout == "" {
		cfg.API.Timeout = "30s"
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if cfg.Locale.Default == "" {
		cfg.Locale.Default = "en"
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Server.CookieName == "" {
		cfg.Server.CookieName = "_brazuca_session"
	}

	if cfg.Server.RateLimit.Window == "" {
		cfg.Server.RateLimit.Window = "1m"
	}

	if cfg.Auth.RegisterFlow == "" {
		cfg.Auth.RegisterFlow = RegisterFlowConfirm
	}

	if cfg.Auth.RedirectDelay == "" {
		cfg.Auth.RedirectDelay = "1.5s"
	}

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "leveldb"
	}

	if cfg.Mail.SenderType == "" {
		cfg.Mail.SenderType = "smtp"
	}

	if cfg.Mail.SMTP.Port == 0 {
		cfg.Mail.SMTP.Port = 587
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
