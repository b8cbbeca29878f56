// Package config provides layered configuration for palettemap.
// Values start from defaults, are overridden by environment variables when
// requested, and are finally overridden by command-line flags.
package config

import (
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/jmylchreest/palettemap/internal/colour"
	"github.com/jmylchreest/palettemap/internal/image"
)

// Environment variables read by WithEnvConfig.
const (
	EnvAlgorithm      = "PALETTEMAP_ALGORITHM"
	EnvWorkers        = "PALETTEMAP_WORKERS"
	EnvOutput         = "PALETTEMAP_OUTPUT"
	EnvMaxInputBytes  = "PALETTEMAP_MAX_INPUT_BYTES"
	EnvMaxPixels      = "PALETTEMAP_MAX_PIXELS"
	EnvNonInteractive = "PALETTEMAP_NON_INTERACTIVE"
	EnvCompression    = "PALETTEMAP_PNG_COMPRESSION"
)

// DefaultOutput is the default output path pattern.
const DefaultOutput = "output.{ext}"

// Compression level names accepted by ParseCompression.
var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"fast":    png.BestSpeed,
	"best":    png.BestCompression,
}

// CompressionNames returns the accepted compression level names.
func CompressionNames() []string {
	return []string{"default", "none", "fast", "best"}
}

// ParseCompression resolves a compression level name.
func ParseCompression(name string) (png.CompressionLevel, error) {
	level, ok := compressionLevels[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("invalid compression level %q (valid: %s)", name, strings.Join(CompressionNames(), ", "))
	}
	return level, nil
}

// Config holds palettemap settings.
type Config struct {
	// Algorithm is the distance metric used when none is given on the command line.
	Algorithm colour.Algorithm

	// Workers is the number of colour resolution goroutines. Zero means GOMAXPROCS.
	Workers int

	// Output is the output path pattern. "{ext}" becomes png and "{name}" the
	// input file name without its extension.
	Output string

	// MaxInputBytes caps the (decompressed) size of input files.
	MaxInputBytes int64

	// MaxPixels caps the pixel count an input image may declare.
	MaxPixels int64

	// NonInteractive disables terminal colour and swatch output.
	NonInteractive bool

	// Compression is the PNG compression level name.
	Compression string
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Algorithm:     colour.DefaultAlgorithm,
		Workers:       0,
		Output:        DefaultOutput,
		MaxInputBytes: image.DefaultMaxInputBytes,
		MaxPixels:     image.DefaultMaxPixels,
		Compression:   "default",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !colour.IsValidAlgorithm(c.Algorithm) {
		if _, err := colour.ParseAlgorithm(string(c.Algorithm)); err != nil {
			return fmt.Errorf("invalid algorithm: %w", err)
		}
		return fmt.Errorf("invalid algorithm: %q is not a canonical name", c.Algorithm)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d: must be zero or positive", c.Workers)
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output path cannot be empty")
	}
	if c.MaxInputBytes <= 0 {
		return fmt.Errorf("invalid max input bytes %d: must be positive", c.MaxInputBytes)
	}
	if c.MaxPixels <= 0 {
		return fmt.Errorf("invalid max pixels %d: must be positive", c.MaxPixels)
	}
	if _, err := ParseCompression(c.Compression); err != nil {
		return err
	}
	return nil
}

// PNGCompression returns the configured PNG compression level.
// It falls back to the default level for invalid names; call Validate first.
func (c Config) PNGCompression() png.CompressionLevel {
	level, err := ParseCompression(c.Compression)
	if err != nil {
		return png.DefaultCompression
	}
	return level
}

// Builder provides a fluent interface for constructing a Config.
type Builder struct {
	config    Config
	useEnv    bool
	lookupEnv func(string) (string, bool)
}

// NewBuilder creates a new Config builder starting from Default().
func NewBuilder() *Builder {
	return &Builder{
		config:    Default(),
		useEnv:    false,
		lookupEnv: os.LookupEnv,
	}
}

// WithEnvConfig loads configuration from PALETTEMAP_* environment variables.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLookupEnv sets the environment lookup function (useful for testing).
func (b *Builder) WithLookupEnv(lookup func(string) (string, bool)) *Builder {
	b.lookupEnv = lookup
	return b
}

// Build applies the environment (if requested) and validates the result.
func (b *Builder) Build() (*Config, error) {
	config := b.config

	if b.useEnv {
		if err := b.applyEnv(&config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (b *Builder) applyEnv(config *Config) error {
	if v, ok := b.env(EnvAlgorithm); ok {
		alg, err := colour.ParseAlgorithm(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAlgorithm, err)
		}
		config.Algorithm = alg
	}

	if v, ok := b.env(EnvWorkers); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvWorkers, v)
		}
		config.Workers = n
	}

	if v, ok := b.env(EnvOutput); ok {
		config.Output = v
	}

	if v, ok := b.env(EnvMaxInputBytes); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvMaxInputBytes, v)
		}
		config.MaxInputBytes = n
	}

	if v, ok := b.env(EnvMaxPixels); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvMaxPixels, v)
		}
		config.MaxPixels = n
	}

	if v, ok := b.env(EnvNonInteractive); ok {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvNonInteractive, v)
		}
		config.NonInteractive = enabled
	}

	if v, ok := b.env(EnvCompression); ok {
		config.Compression = v
	}

	return nil
}

// env returns a trimmed, non-empty environment value.
func (b *Builder) env(key string) (string, bool) {
	v, ok := b.lookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
