// Copyright (c) 2026 Tilawa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, providers) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/tilawa/pkg/query"
)

// Source kinds accepted by QURAN_SOURCE.
const (
	SourceHTTP     = "http"
	SourceFile     = "file"
	SourceEmbedded = "embedded"
)

// # Configuration Schema

// Config holds all runtime configuration for the Tilawa API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL) holding reader state
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	// When empty the migrations embedded in the binary are applied.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis). When empty the catalogue caches in process.
	RedisURL string `env:"REDIS_URL"`

	// Anonymous reading sessions
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"8760h"`

	// Cross-Origin Resource Sharing, comma separated
	CORSOrigins string `env:"CORS_ORIGINS"`

	// Upstream Quran data
	QuranSource           string        `env:"QURAN_SOURCE"           envDefault:"http"`
	QuranAPIBaseURL       string        `env:"QURAN_API_BASE_URL"     envDefault:"https://api.quran.gading.dev"`
	QuranAPIListPath      string        `env:"QURAN_API_LIST_PATH"    envDefault:"/surah"`
	QuranAPIChapterPath   string        `env:"QURAN_API_CHAPTER_PATH" envDefault:"/surah/{number}"`
	QuranDataFile         string        `env:"QURAN_DATA_FILE"`
	NormalizerAliasesPath string        `env:"NORMALIZER_ALIASES_PATH"`
	ProviderTimeout       time.Duration `env:"PROVIDER_TIMEOUT"       envDefault:"15s"`
	ProviderConcurrency   int           `env:"PROVIDER_CONCURRENCY"   envDefault:"4"`

	// Recitation audio. RECITERS_PATH replaces the built-in reciter list.
	AudioBaseURL string `env:"AUDIO_BASE_URL" envDefault:"https://everyayah.com/data"`
	RecitersPath string `env:"RECITERS_PATH"`

	// Catalogue cache
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"6h"`
	CatalogPrefetch string        `env:"CATALOG_PREFETCH"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.QuranSource {
	case SourceHTTP, SourceEmbedded:
	case SourceFile:
		if c.QuranDataFile == "" {
			return fmt.Errorf("config: QURAN_DATA_FILE is required when QURAN_SOURCE=%s", SourceFile)
		}
	default:
		return fmt.Errorf("config: unknown QURAN_SOURCE %q", c.QuranSource)
	}

	if c.ProviderConcurrency < 1 {
		return fmt.Errorf("config: PROVIDER_CONCURRENCY must be positive, got %d", c.ProviderConcurrency)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the parsed CORS_ORIGINS list.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.CORSOrigins)
}

// PrefetchChapters returns the parsed CATALOG_PREFETCH chapter numbers.
func (c *Config) PrefetchChapters() []int {
	return query.IntList(c.CatalogPrefetch)
}
