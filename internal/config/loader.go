package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds worker-level parameters. Zero values mean "unspecified" and
// keep the built-in defaults in main.
type Config struct {
	ModelCacheDir      string `json:"model_cache_dir" yaml:"model_cache_dir" toml:"model_cache_dir"`
	StatusAddr         string `json:"status_addr" yaml:"status_addr" toml:"status_addr"`
	LogLevel           string `json:"log_level" yaml:"log_level" toml:"log_level"`
	DefaultModel       string `json:"default_model" yaml:"default_model" toml:"default_model"`
	DefaultDevice      string `json:"default_device" yaml:"default_device" toml:"default_device"`
	DefaultComputeType string `json:"default_compute_type" yaml:"default_compute_type" toml:"default_compute_type"`
	DefaultLanguage    string `json:"default_language" yaml:"default_language" toml:"default_language"`
	DefaultBeamSize    int    `json:"default_beam_size" yaml:"default_beam_size" toml:"default_beam_size"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
