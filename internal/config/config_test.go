package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
server:
  port: 9090
  allowed_origins:
    - https://splitbill.example.com
storage:
  database_path: /var/lib/splitbill/bills.db
openai:
  api_key: ${TEST_OPENAI_KEY}
  model: gpt-4o-mini
display:
  pinned_currencies: [THB, USD]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("TEST_OPENAI_KEY", "sk-test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://splitbill.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/var/lib/splitbill/bills.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey, "env reference should be expanded")
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, []string{"THB", "USD"}, cfg.Display.PinnedCurrencies)

	// Unspecified sections keep their defaults.
	assert.NotEmpty(t, cfg.Rates.BaseURL)
	assert.Equal(t, "tint", cfg.Logging.Format)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("LOG_FORMAT", "json")

	cfg := LoadFromEnv()
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/tmp/test.db", cfg.Storage.DatabasePath)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadOrEnvMissingFile(t *testing.T) {
	cfg, err := LoadOrEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}
