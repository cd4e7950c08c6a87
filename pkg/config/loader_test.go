package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileLoader_LoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
service:
  name: BrazucaPhish Lab
api:
  base_url: https://phish.example.com/
  timeout: 10s
locale:
  default: pt
server:
  port: 9090
  rate_limit:
    requests: 20
auth:
  register_flow: reset
storage:
  type: memory
`)

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "BrazucaPhish Lab", cfg.Service.Name)
	assert.Equal(t, "https://phish.example.com", cfg.API.BaseURL, "trailing slash is trimmed")
	timeout, err := cfg.API.GetTimeout()
	require.NoError(t, err)
	assert.Equal(t, "10s", timeout.String())
	assert.Equal(t, "pt", cfg.Locale.Default)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 20, cfg.Server.RateLimit.Requests)
	assert.Equal(t, "1m", cfg.Server.RateLimit.Window)
	assert.Equal(t, RegisterFlowReset, cfg.Auth.RegisterFlow)
	assert.Equal(t, "memory", cfg.Storage.Type)
}

func TestFileLoader_LoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"api": {"base_url": "http://localhost:5000"}}`)

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.Equal(t, "leveldb", cfg.Storage.Type)
}

func TestFileLoader_Defaults(t *testing.T) {
	path := writeFile(t, "config.yml", "api:\n  base_url: http://localhost:5000\n")

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "BrazucaPhish", cfg.Service.Name)
	assert.Equal(t, "30s", cfg.API.Timeout)
	assert.Equal(t, "en", cfg.Locale.Default)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "_brazuca_session", cfg.Server.CookieName)
	assert.Equal(t, RegisterFlowConfirm, cfg.Auth.RegisterFlow)
	delay, err := cfg.Auth.GetRedirectDelay()
	require.NoError(t, err)
	assert.Equal(t, int64(1500), delay.Milliseconds())
	assert.Equal(t, "smtp", cfg.Mail.SenderType)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestFileLoader_ExpandsEnv(t *testing.T) {
	t.Setenv("BRAZUCA_TEST_API", "https://api.brazuca.test")
	path := writeFile(t, "config.yaml", `
api:
  base_url: ${BRAZUCA_TEST_API}
storage:
  type: ${BRAZUCA_TEST_STORE:-memory}
`)

	cfg, err := NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.brazuca.test", cfg.API.BaseURL)
	assert.Equal(t, "memory", cfg.Storage.Type)
}

func TestFileLoader_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileLoader(filepath.Join(t.TempDir(), "nope.yaml")).Load()
		assert.ErrorIs(t, err, ErrConfigFileNotFound)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewFileLoader(writeFile(t, "config.toml", "x = 1")).Load()
		assert.ErrorContains(t, err, "unsupported config file format")
	})

	t.Run("bad yaml", func(t *testing.T) {
		_, err := NewFileLoader(writeFile(t, "config.yaml", "api: [")).Load()
		assert.ErrorContains(t, err, "failed to parse YAML")
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := NewFileLoader(writeFile(t, "config.yaml", "api:\n  timeout: 5s\n")).Load()
		assert.ErrorIs(t, err, ErrAPIBaseURLRequired)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.API.BaseURL)
	assert.ErrorIs(t, cfg.Validate(), ErrAPIBaseURLRequired)

	cfg.API.BaseURL = "http://localhost:5000"
	assert.NoError(t, cfg.Validate())
}

func TestFileLoader_ReadSkipsValidation(t *testing.T) {
	path := writeFile(t, "config.yaml", "locale:\n  default: pt\n")

	cfg, err := NewFileLoader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, "pt", cfg.Locale.Default)
	assert.Equal(t, "1m", cfg.Server.RateLimit.Window)

	cfg.API.BaseURL = "http://localhost:5000"
	assert.NoError(t, cfg.Validate())
}
