// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file,
// when present), loads them on top of the defaults into structured Go
// types, and validates them so the service fails fast on bad config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for every block.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env *before* any code reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the prefix COUNTRIES_.
	Keys are normalized: prefix removed, lowercased, and "__" turned into
	the "." nesting delimiter, e.g.

	  COUNTRIES_SERVER__PORT              -> server.port
	  COUNTRIES_RATE_LIMIT__ENABLED       -> rate_limit.enabled
	  COUNTRIES_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level

	A single underscore stays part of the key name.
*/

// EnvPrefix is the prefix every recognized environment variable carries.
const EnvPrefix = "COUNTRIES_"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Store         StoreConfig          `koanf:"store"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"required"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"required"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// RateLimitConfig throttles requests per client IP.
type RateLimitConfig struct {
	Enabled           bool          `koanf:"enabled"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"required_if=Enabled true,gte=0"`
	Burst             int           `koanf:"burst" validate:"gte=0"`
	ExpiresIn         time.Duration `koanf:"expires_in"`
}

// StoreConfig controls how the in-memory store is populated at startup.
type StoreConfig struct {
	// SeedFile is an optional path to a .yaml, .yml, .toml or .json file.
	// Empty means the built-in seed.
	SeedFile string `koanf:"seed_file"`
}

// DefaultConfig returns a fully populated configuration suitable for local runs.
// LoadConfig merges environment overrides on top of it.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "5000",
			ReadTimeout:        5 * time.Second,
			WriteTimeout:       10 * time.Second,
			IdleTimeout:        120 * time.Second,
			ShutdownTimeout:    15 * time.Second,
			CORSAllowedOrigins: []string{"*"},
		},
		RateLimit: RateLimitConfig{
			Enabled:           false,
			RequestsPerSecond: 20,
			Burst:             40,
			ExpiresIn:         3 * time.Minute,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig loads configuration from environment variables, unmarshals it on
// top of DefaultConfig, validates it, and returns the resulting config.
//
// Behavior summary:
//   - Loads env vars with prefix COUNTRIES_
//   - Converts env keys into koanf keys using "." nesting
//   - Unmarshals into Config (fields without an env var keep their default)
//   - Validates required config blocks/fields
//   - Forces observability service name + environment
//   - Validates observability config as well
func LoadConfig() (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	// Unmarshal decodes into the pre-filled defaults; keys that are absent
	// from the environment leave the default value in place.
	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := Validate(mainConfig); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// Validate runs the struct-tag validator over cfg and then the observability
// rules that tags cannot express.
func Validate(cfg *Config) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	// Tracing/logging must see consistent service naming regardless of env.
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}

// listKeys are the options that hold a comma-separated list in the environment.
var listKeys = map[string]bool{
	"server.cors_allowed_origins":        true,
	"observability.health_checks.checks": true,
}

// envKey maps COUNTRIES_SERVER__PORT to server.port.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// envKeyValue maps the key like envKey and splits list values on commas,
// e.g. COUNTRIES_SERVER__CORS_ALLOWED_ORIGINS=https://a.example,https://b.example.
func envKeyValue(key, value string) (string, interface{}) {
	key = envKey(key)
	if !listKeys[key] {
		return key, value
	}

	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}
