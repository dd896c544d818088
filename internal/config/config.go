package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// PlaceholderAPIKey is the value shipped in sample configs. It is treated the
// same as an empty key: the catalog runs on built-in fixtures.
const PlaceholderAPIKey = "COLE_SUA_CHAVE_AQUI"

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	APIKey       string        `mapstructure:"api_key"` // Optional static key required in X-API-Key
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CatalogConfig configures the remote exercise catalog and the lookup cache in front of it.
type CatalogConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Host           string        `mapstructure:"host"` // Sent as X-RapidAPI-Host
	APIKey         string        `mapstructure:"api_key"`
	PageSize       int           `mapstructure:"page_size"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SearchDelay    time.Duration `mapstructure:"search_delay"`
	MaxResults     int           `mapstructure:"max_results"`
}

// APIKeyConfigured reports whether a real catalog key is present.
func (c CatalogConfig) APIKeyConfigured() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "text"
}

// DefaultCatalogConfig returns the catalog settings used when nothing is configured.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		BaseURL:        "https://exercisedb.p.rapidapi.com",
		Host:           "exercisedb.p.rapidapi.com",
		PageSize:       50,
		CacheTTL:       10 * time.Minute,
		RequestTimeout: 30 * time.Second,
		SearchDelay:    300 * time.Millisecond,
		MaxResults:     8,
	}
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// catalog.api_key -> CATALOG_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No file is fine, defaults and env vars still apply.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}

	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultCatalogConfig()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.api_key", "")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")

	v.SetDefault("catalog.base_url", def.BaseURL)
	v.SetDefault("catalog.host", def.Host)
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.page_size", def.PageSize)
	v.SetDefault("catalog.cache_ttl", def.CacheTTL.String())
	v.SetDefault("catalog.request_timeout", def.RequestTimeout.String())
	v.SetDefault("catalog.search_delay", def.SearchDelay.String())
	v.SetDefault("catalog.max_results", def.MaxResults)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate rejects values the services cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Catalog.BaseURL == "" {
		errs = append(errs, errors.New("catalog.base_url is required"))
	}
	if c.Catalog.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("catalog.page_size must be positive, got %d", c.Catalog.PageSize))
	}
	if c.Catalog.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("catalog.max_results must be positive, got %d", c.Catalog.MaxResults))
	}
	if c.Catalog.CacheTTL < 0 || c.Catalog.RequestTimeout < 0 || c.Catalog.SearchDelay < 0 {
		errs = append(errs, errors.New("catalog durations must not be negative"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	return errors.Join(errs...)
}
