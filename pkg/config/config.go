package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for catalog-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (the auth token secret, the seed sync secret) must only come
// from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Store configuration
	Store StoreConfig `yaml:"store"`

	// Seed configuration
	Seed SeedConfig `yaml:"seed"`

	// Authentication configuration
	Auth AuthConfig `yaml:"auth"`
}

// StoreConfig holds the document store settings.
type StoreConfig struct {
	// DataDir is the directory holding one JSON document per collection.
	DataDir string `yaml:"data_dir" env:"STORE_DATA_DIR" env-default:"./data"`
}

// SeedConfig holds the seed document settings.
type SeedConfig struct {
	// Path points at the nested seed document (YAML or JSON).
	Path string `yaml:"path" env:"SEED_PATH" env-default:"./seed/catalog-seed.yaml"`

	// SyncSecret guards the seed sync endpoint. Secret - not in YAML.
	SyncSecret string `yaml:"-" env:"SYNC_SECRET"`
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	// EnableVerification controls whether bearer token signatures are
	// validated. Set to false for local development without a token
	// issuer.
	EnableVerification bool `yaml:"enable_verification" env:"AUTH_ENABLE_VERIFICATION" env-default:"true"`

	// TokenSecret is the HS256 signing secret. Secret - not in YAML.
	TokenSecret string `yaml:"-" env:"AUTH_TOKEN_SECRET"`
}

// Load reads configuration from config.yaml with environment variable
// overrides. The version parameter is injected at build time and set on
// the returned Config. When config.yaml is absent, environment
// variables and defaults alone apply.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.EnableVerification && c.Auth.TokenSecret == "" {
		return fmt.Errorf("AUTH_TOKEN_SECRET must be set when auth verification is enabled")
	}
	if c.Store.DataDir == "" {
		return fmt.Errorf("store data_dir must not be empty")
	}
	return nil
}
