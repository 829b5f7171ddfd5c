package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// ServerURL is the base URL of the notes backend.
	ServerURL string `yaml:"server_url"`

	// TokenPath is where the session token is persisted between runs.
	TokenPath string `yaml:"token_path"`

	HTTPTimeout time.Duration `yaml:"http_timeout"`
	LogLevel    string        `yaml:"log_level"`
}

// Load builds the configuration from defaults, an optional YAML config
// file, and environment variables, in increasing order of precedence.
// The config file location itself comes from NOTES_CONFIG_FILE and
// defaults to ~/.config/notes-client/config.yaml; a missing file is not
// an error.
func Load() Config {
	cfg := Config{
		ServerURL:   "http://localhost:8000",
		TokenPath:   defaultTokenPath(),
		HTTPTimeout: 15 * time.Second,
		LogLevel:    "info",
	}

	if path := getenv("NOTES_CONFIG_FILE", defaultConfigPath()); path != "" {
		if b, err := os.ReadFile(path); err == nil {
			// Unknown or malformed keys fall back to defaults.
			_ = yaml.Unmarshal(b, &cfg)
		}
	}

	cfg.ServerURL = getenv("NOTES_SERVER", cfg.ServerURL)
	cfg.TokenPath = getenv("NOTES_TOKEN_PATH", cfg.TokenPath)
	cfg.HTTPTimeout = getenvDuration("NOTES_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.LogLevel = getenv("NOTES_LOG_LEVEL", cfg.LogLevel)

	return cfg
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "notes-client", "config.yaml")
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes-token"
	}
	return filepath.Join(home, ".config", "notes-client", "token")
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
