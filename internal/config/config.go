// Package config loads and validates the hearth client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for the hearth client.
type Config struct {
	ServerURL      string `yaml:"server_url" json:"server_url"`
	DownloadDir    string `yaml:"download_dir" json:"download_dir"`
	Theme          string `yaml:"theme" json:"theme"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`
	LogFile        string `yaml:"log_file" json:"log_file"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "hearth.yaml"
	}
	return filepath.Join(home, ".config", "hearth", "hearth.yaml")
}

// Default returns the configuration used when no file is present.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ServerURL:      "http://localhost:8080",
		DownloadDir:    filepath.Join(home, "Downloads"),
		Theme:          "auto",
		TimeoutSeconds: 10,
		LogFile:        filepath.Join(home, ".config", "hearth", "hearth.log"),
	}
}

// Load reads the config file at path, applies environment overrides, and
// validates the result. A missing file is not an error; defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through with defaults
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if verrs, err := ValidateYAML(data); err != nil {
			return cfg, err
		} else if len(verrs) > 0 {
			return cfg, fmt.Errorf("config %s is invalid: %s", path, verrs[0])
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.ServerURL == "" {
		return cfg, fmt.Errorf("config: server_url must not be empty")
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = Default().TimeoutSeconds
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("HEARTH_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("HEARTH_DOWNLOAD_DIR"); v != "" {
		cfg.DownloadDir = v
	}
	if v := os.Getenv("HEARTH_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("HEARTH_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("HEARTH_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}
