/*
Copyright © 2025 Mirrorkit Authors <oss@mirrorkit.dev>
*/

// Package config loads framerfix settings from an optional .framerfix.yaml
// (or .toml) file in the mirror root, layered over built-in defaults and
// validated against an embedded JSON Schema.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed framerfix-config.schema.json
var schemaBytes []byte

// HTTPConfig controls the download client.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// ScanConfig controls tree walking during detection.
type ScanConfig struct {
	Exclude          []string `mapstructure:"exclude" yaml:"exclude" toml:"exclude"`
	MaxFileSizeBytes int64    `mapstructure:"max_file_size_bytes" yaml:"max_file_size_bytes" toml:"max_file_size_bytes"`
}

// Config is the resolved framerfix configuration.
type Config struct {
	HTTP HTTPConfig `mapstructure:"http" yaml:"http" toml:"http"`
	Scan ScanConfig `mapstructure:"scan" yaml:"scan" toml:"scan"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{TimeoutSeconds: 30},
		Scan: ScanConfig{
			Exclude:          []string{},
			MaxFileSizeBytes: 8 * 1024 * 1024,
		},
	}
}

// Timeout returns the HTTP client timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Load reads .framerfix.{yaml,yml,toml} from root if present. A missing file
// yields defaults; a malformed or schema-invalid file is an error.
func Load(root string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName(".framerfix")
	v.AddConfigPath(root)
	v.SetDefault("http.timeout_seconds", cfg.HTTP.TimeoutSeconds)
	v.SetDefault("scan.exclude", cfg.Scan.Exclude)
	v.SetDefault("scan.max_file_size_bytes", cfg.Scan.MaxFileSizeBytes)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := validate(v.AllSettings()); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", v.ConfigFileUsed(), err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// validate checks the loaded settings against the embedded schema.
func validate(settings map[string]interface{}) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewGoLoader(settings)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	return nil
}

const yamlHeader = `# framerfix configuration
# Tunes scanning and download behavior; the content origin is fixed.
`

// WriteDefault writes a default config file into root in the given format
// ("yaml" or "toml"). Refuses to overwrite an existing file unless force is
// set. Returns the path written.
func WriteDefault(root, format string, force bool) (string, error) {
	cfg := Default()

	var name string
	var data []byte
	var err error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		name = ".framerfix.yaml"
		data, err = yaml.Marshal(cfg)
		data = append([]byte(yamlHeader), data...)
	case "toml":
		name = ".framerfix.toml"
		data, err = toml.Marshal(cfg)
	default:
		return "", fmt.Errorf("unsupported config format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode default config: %w", err)
	}

	path := filepath.Join(root, name)
	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return "", fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
