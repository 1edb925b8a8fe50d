package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "https://www.googleapis.com/books/v1/volumes", cfg.Books.Endpoint)
		assert.Equal(t, 20, cfg.Books.MaxResults)
		assert.Equal(t, time.Duration(0), cfg.Books.Timeout)
		assert.Equal(t, "ignore-stale", cfg.Search.Policy)
		assert.False(t, cfg.Search.FieldAliases)
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "booksearch.yaml")
		content := `
books:
  endpoint: "http://127.0.0.1:9999/volumes"
  timeout: 3s
search:
  policy: last-completed
  field_aliases: true
web_adapter:
  host: 0.0.0.0
  port: 8088
log:
  level: debug
  json: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "http://127.0.0.1:9999/volumes", cfg.Books.Endpoint)
		assert.Equal(t, 20, cfg.Books.MaxResults, "unset keys keep defaults")
		assert.Equal(t, 3*time.Second, cfg.Books.Timeout)
		assert.Equal(t, "last-completed", cfg.Search.Policy)
		assert.True(t, cfg.Search.FieldAliases)
		assert.Equal(t, "0.0.0.0:8088", cfg.WebAdapter.Address())
		assert.Equal(t, "http://0.0.0.0:8088", cfg.WebAdapter.FullURL())
		assert.True(t, cfg.Log.JSON)
	})

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv("BOOKSEARCH_BOOKS_MAX_RESULTS", "10")
		t.Setenv("BOOKSEARCH_LOG_LEVEL", "warn")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 10, cfg.Books.MaxResults)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("books: [unterminated"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty endpoint", func(c *Config) { c.Books.Endpoint = "" }},
		{"zero max results", func(c *Config) { c.Books.MaxResults = 0 }},
		{"max results above api cap", func(c *Config) { c.Books.MaxResults = 41 }},
		{"negative timeout", func(c *Config) { c.Books.Timeout = -time.Second }},
		{"unknown policy", func(c *Config) { c.Search.Policy = "cancel-previous" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
