// Package config loads marquee's runtime configuration.
//
// Values are layered (lowest to highest precedence): built-in defaults, an
// optional marquee.toml/marquee.yaml in the working directory or ~/.marquee,
// .env.local/.env files, then MARQUEE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend names accepted by store.backend.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// DefaultCatalogURL is the TMDB v3 API root.
const DefaultCatalogURL = "https://api.themoviedb.org/3"

// Config is the complete application configuration.
type Config struct {
	Catalog Catalog `mapstructure:"catalog"`
	Search  Search  `mapstructure:"search"`
	Store   Store   `mapstructure:"store"`
	Log     Log     `mapstructure:"log"`
}

// Catalog holds movie catalog API settings.
type Catalog struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Credential returns the API key and whether one is configured.
func (c Catalog) Credential() (string, bool) {
	key := strings.TrimSpace(c.APIKey)
	return key, key != ""
}

// Search holds orchestrator tuning.
type Search struct {
	Debounce        time.Duration `mapstructure:"debounce"`
	TrendingLimit   int           `mapstructure:"trending_limit"`
	RefreshTrending bool          `mapstructure:"refresh_trending"`
}

// Store selects and configures the trend store backend.
type Store struct {
	Backend         string `mapstructure:"backend"`
	Path            string `mapstructure:"path"`
	MongoURI        string `mapstructure:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection"`
}

// Log configures the file logger.
type Log struct {
	Dir   string `mapstructure:"dir"`
	Level string `mapstructure:"level"`
}

// DataDir returns ~/.marquee, the home of the database, logs and config.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".marquee"
	}
	return filepath.Join(home, ".marquee")
}

func setDefaults(v *viper.Viper) {
	dataDir := DataDir()

	v.SetDefault("catalog.base_url", DefaultCatalogURL)
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.timeout", 10*time.Second)

	v.SetDefault("search.debounce", time.Second)
	v.SetDefault("search.trending_limit", 5)
	v.SetDefault("search.refresh_trending", true)

	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.path", filepath.Join(dataDir, "marquee.db"))
	v.SetDefault("store.mongo_uri", "")
	v.SetDefault("store.mongo_database", "marquee")
	v.SetDefault("store.mongo_collection", "metrics")

	v.SetDefault("log.dir", filepath.Join(dataDir, "logs"))
	v.SetDefault("log.level", "info")
}

// Load reads configuration. configFile may be empty to use the search path.
// A missing config file is not an error; a malformed one is.
func Load(configFile string) (*Config, error) {
	// Existing environment always wins over dotenv files.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("marquee")
		v.AddConfigPath(".")
		v.AddConfigPath(DataDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// The catalog key is commonly exported under TMDB's or the web
	// frontend's variable names.
	if _, ok := cfg.Catalog.Credential(); !ok {
		for _, name := range []string{"TMDB_API_KEY", "VITE_API_KEY"} {
			if key := strings.TrimSpace(os.Getenv(name)); key != "" {
				cfg.Catalog.APIKey = key
				break
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later in confusing ways.
// A missing API key is deliberately not an error: the UI reports it.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("store.path is required for the %s backend", BackendSQLite)
		}
	case BackendMongo:
		if strings.TrimSpace(c.Store.MongoURI) == "" {
			return fmt.Errorf("store.mongo_uri is required for the %s backend", BackendMongo)
		}
	default:
		return fmt.Errorf("unknown store.backend %q (want %s or %s)", c.Store.Backend, BackendSQLite, BackendMongo)
	}
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	if c.Search.TrendingLimit < 0 {
		return fmt.Errorf("search.trending_limit must not be negative")
	}
	return nil
}
