package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// redacted replaces the API key in dumps.
const redacted = "<redacted>"

// fileConfig mirrors marquee.toml. Durations are written as strings ("1s")
// so the file reads back through Load unchanged.
type fileConfig struct {
	Catalog struct {
		BaseURL string `toml:"base_url"`
		APIKey  string `toml:"api_key"`
		Timeout string `toml:"timeout"`
	} `toml:"catalog"`
	Search struct {
		Debounce        string `toml:"debounce"`
		TrendingLimit   int    `toml:"trending_limit"`
		RefreshTrending bool   `toml:"refresh_trending"`
	} `toml:"search"`
	Store struct {
		Backend         string `toml:"backend"`
		Path            string `toml:"path"`
		MongoURI        string `toml:"mongo_uri"`
		MongoDatabase   string `toml:"mongo_database"`
		MongoCollection string `toml:"mongo_collection"`
	} `toml:"store"`
	Log struct {
		Dir   string `toml:"dir"`
		Level string `toml:"level"`
	} `toml:"log"`
}

// TOML renders c in config file form. The API key is replaced by a
// placeholder unless reveal is set.
func (c *Config) TOML(reveal bool) ([]byte, error) {
	key, ok := c.Catalog.Credential()
	if ok && !reveal {
		key = redacted
	}
	return c.encode(key)
}

// WriteFile saves c to path as TOML, creating directories as needed. The
// API key is left empty; keep it in the environment or .env.local.
func (c *Config) WriteFile(path string) error {
	out, err := c.encode("")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) encode(apiKey string) ([]byte, error) {
	var f fileConfig
	f.Catalog.BaseURL = c.Catalog.BaseURL
	f.Catalog.APIKey = apiKey
	f.Catalog.Timeout = c.Catalog.Timeout.String()

	f.Search.Debounce = c.Search.Debounce.String()
	f.Search.TrendingLimit = c.Search.TrendingLimit
	f.Search.RefreshTrending = c.Search.RefreshTrending

	f.Store.Backend = c.Store.Backend
	f.Store.Path = c.Store.Path
	f.Store.MongoURI = c.Store.MongoURI
	f.Store.MongoDatabase = c.Store.MongoDatabase
	f.Store.MongoCollection = c.Store.MongoCollection

	f.Log.Dir = c.Log.Dir
	f.Log.Level = c.Log.Level

	out, err := toml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return out, nil
}
