package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"MARQUEE_CATALOG_API_KEY", "MARQUEE_STORE_BACKEND", "MARQUEE_SEARCH_DEBOUNCE",
		"TMDB_API_KEY", "VITE_API_KEY",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marquee.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, time.Second, cfg.Search.Debounce)
	assert.Equal(t, 5, cfg.Search.TrendingLimit)
	assert.True(t, cfg.Search.RefreshTrending)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.NotEmpty(t, cfg.Store.Path)

	_, ok := cfg.Catalog.Credential()
	assert.False(t, ok, "no key configured")
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[catalog]
api_key = "file-key"
timeout = "3s"

[search]
debounce = "250ms"
trending_limit = 8

[store]
backend = "sqlite"
path = ":memory:"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	key, ok := cfg.Catalog.Credential()
	require.True(t, ok)
	assert.Equal(t, "file-key", key)
	assert.Equal(t, 3*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 8, cfg.Search.TrendingLimit)
	assert.Equal(t, ":memory:", cfg.Store.Path)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MARQUEE_CATALOG_API_KEY", "env-key")

	cfg, err := Load(writeConfig(t, "[catalog]\napi_key = \"file-key\"\n"))
	require.NoError(t, err)

	key, _ := cfg.Catalog.Credential()
	assert.Equal(t, "env-key", key)
}

func TestLoadFallbackKeyNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("VITE_API_KEY", "vite-key")

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	key, ok := cfg.Catalog.Credential()
	require.True(t, ok)
	assert.Equal(t, "vite-key", key)
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "[catalog\napi_key ="))
	assert.Error(t, err)
}

func TestCredentialTrimsWhitespace(t *testing.T) {
	key, ok := Catalog{APIKey: "   "}.Credential()
	assert.False(t, ok)
	assert.Empty(t, key)

	key, ok = Catalog{APIKey: " abc "}.Credential()
	assert.True(t, ok)
	assert.Equal(t, "abc", key)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"sqlite ok", func(c *Config) {}, false},
		{"sqlite without path", func(c *Config) { c.Store.Path = "" }, true},
		{"mongo without uri", func(c *Config) { c.Store.Backend = BackendMongo }, true},
		{"mongo with uri", func(c *Config) {
			c.Store.Backend = BackendMongo
			c.Store.MongoURI = "mongodb://localhost:27017"
		}, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "appwrite" }, true},
		{"negative debounce", func(c *Config) { c.Search.Debounce = -time.Second }, true},
		{"negative trending limit", func(c *Config) { c.Search.TrendingLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Search: Search{Debounce: time.Second, TrendingLimit: 5},
				Store:  Store{Backend: BackendSQLite, Path: "marquee.db"},
			}
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
