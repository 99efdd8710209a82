package config

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/easel/pkg/envvar"
	"github.com/JaimeStill/easel/pkg/formatting"
	"github.com/JaimeStill/easel/pkg/middleware"
	"github.com/JaimeStill/easel/pkg/openapi"
	"github.com/JaimeStill/easel/pkg/pagination"
)

const (
	EnvAPIBasePath      = "EASEL_API_BASE_PATH"
	EnvAPIMaxUploadSize = "EASEL_API_MAX_UPLOAD_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "EASEL_CORS_ENABLED",
	Origins:          "EASEL_CORS_ORIGINS",
	AllowedMethods:   "EASEL_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "EASEL_CORS_ALLOWED_HEADERS",
	AllowCredentials: "EASEL_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "EASEL_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "EASEL_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "EASEL_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "EASEL_OPENAPI_TITLE",
	Description: "EASEL_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, upload, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes. Finalize guarantees it parses.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, _ := formatting.ParseBytes(c.MaxUploadSize)
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	envvar.String(&c.BasePath, EnvAPIBasePath)
	envvar.String(&c.MaxUploadSize, EnvAPIMaxUploadSize)

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 {
		return fmt.Errorf("base_path must be a single-level path such as /api: %q", c.BasePath)
	}

	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_upload_size must be positive: %s", c.MaxUploadSize)
	}
	return nil
}
