package config

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/easel/pkg/envvar"
)

const (
	EnvGeneratorSeed         = "EASEL_GENERATOR_SEED"
	EnvGeneratorOutputPrefix = "EASEL_GENERATOR_OUTPUT_PREFIX"
	EnvGeneratorImagePrefix  = "EASEL_GENERATOR_IMAGE_PREFIX"
)

// GeneratorConfig controls output selection and where blobs are written.
// A zero Seed draws a random seed at startup.
type GeneratorConfig struct {
	Seed         uint64 `toml:"seed"`
	OutputPrefix string `toml:"output_prefix"`
	ImagePrefix  string `toml:"image_prefix"`
}

func (c *GeneratorConfig) Finalize() error {
	if c.OutputPrefix == "" {
		c.OutputPrefix = "outputs"
	}
	if c.ImagePrefix == "" {
		c.ImagePrefix = "images"
	}

	envvar.Uint64(&c.Seed, EnvGeneratorSeed)
	envvar.String(&c.OutputPrefix, EnvGeneratorOutputPrefix)
	envvar.String(&c.ImagePrefix, EnvGeneratorImagePrefix)

	return c.validate()
}

func (c *GeneratorConfig) Merge(overlay *GeneratorConfig) {
	if overlay.Seed != 0 {
		c.Seed = overlay.Seed
	}
	if overlay.OutputPrefix != "" {
		c.OutputPrefix = overlay.OutputPrefix
	}
	if overlay.ImagePrefix != "" {
		c.ImagePrefix = overlay.ImagePrefix
	}
}

func (c *GeneratorConfig) validate() error {
	for name, prefix := range map[string]string{
		"output_prefix": c.OutputPrefix,
		"image_prefix":  c.ImagePrefix,
	} {
		if strings.Contains(prefix, "..") || strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("invalid %s: %q", name, prefix)
		}
	}
	if c.OutputPrefix == c.ImagePrefix {
		return fmt.Errorf("output_prefix and image_prefix must differ: %q", c.OutputPrefix)
	}
	return nil
}
