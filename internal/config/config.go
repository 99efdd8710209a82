// Package config loads service configuration from TOML files and EASEL_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/easel/pkg/database"
	"github.com/JaimeStill/easel/pkg/envvar"
	"github.com/JaimeStill/easel/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvEasel                = "EASEL_ENV"
	EnvEaselShutdownTimeout = "EASEL_SHUTDOWN_TIMEOUT"
	EnvEaselVersion         = "EASEL_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "EASEL_DB_HOST",
	Port:            "EASEL_DB_PORT",
	Name:            "EASEL_DB_NAME",
	User:            "EASEL_DB_USER",
	Password:        "EASEL_DB_PASSWORD",
	SSLMode:         "EASEL_DB_SSL_MODE",
	MaxOpenConns:    "EASEL_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "EASEL_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "EASEL_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "EASEL_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "EASEL_STORAGE_PROVIDER",
	ContainerName:    "EASEL_STORAGE_CONTAINER_NAME",
	ConnectionString: "EASEL_STORAGE_CONNECTION_STRING",
	ServiceURL:       "EASEL_STORAGE_SERVICE_URL",
	Endpoint:         "EASEL_STORAGE_ENDPOINT",
	AccessKey:        "EASEL_STORAGE_ACCESS_KEY",
	SecretKey:        "EASEL_STORAGE_SECRET_KEY",
	Region:           "EASEL_STORAGE_REGION",
	UseSSL:           "EASEL_STORAGE_USE_SSL",
}

// Config is the root configuration for the Easel service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Generator       GeneratorConfig `toml:"generator"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the EASEL_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvEasel); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without a config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase resolves only the database section. Tools that never touch
// storage, such as the migrator, use it to avoid storage validation.
func LoadDatabase() (*database.Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Database.Finalize(databaseEnv); err != nil {
		return nil, fmt.Errorf("finalize database config: %w", err)
	}

	return &cfg.Database, nil
}

func read() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Generator.Merge(&overlay.Generator)
}

// Finalize applies defaults, environment overrides, and validation to the
// root config and every section.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Generator.Finalize(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	envvar.String(&c.ShutdownTimeout, EnvEaselShutdownTimeout)
	envvar.String(&c.Version, EnvEaselVersion)
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvEasel); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
