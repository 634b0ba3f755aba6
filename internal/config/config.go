// Package config loads server settings from an optional YAML file with
// environment variable overrides. Missing or invalid values fall back to
// sane defaults rather than failing startup.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/codecollab/editor-server/internal/auth"
	"github.com/codecollab/editor-server/internal/ws"
)

// Config holds the server's runtime settings.
type Config struct {
	Addr           string   `yaml:"addr"`
	DatabasePath   string   `yaml:"database_path"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	PingInterval   Duration `yaml:"ping_interval"`
	ClientTimeout  Duration `yaml:"client_timeout"`
	TokenTTL       Duration `yaml:"token_ttl"`
}

// Duration parses YAML values like "5s" into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}

	*d = Duration(parsed)

	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:           ":8080",
		DatabasePath:   "editor.db",
		AllowedOrigins: []string{"http://localhost:8080"},
		PingInterval:   Duration(ws.DefaultPingInterval),
		ClientTimeout:  Duration(ws.DefaultClientTimeout),
		TokenTTL:       Duration(auth.DefaultTTL),
	}
}

// Load reads the YAML file at path, applies environment overrides, and
// sanitizes the result. An empty path or missing file yields defaults
// plus overrides; a present but unparsable file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}

		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)
	sanitize(&cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if addr := os.Getenv("EDITOR_ADDR"); addr != "" {
		cfg.Addr = addr
	}

	if path := os.Getenv("EDITOR_DB_PATH"); path != "" {
		cfg.DatabasePath = path
	}

	if origins := os.Getenv("EDITOR_ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = splitOrigins(origins)
	}

	overrideDuration(&cfg.PingInterval, "EDITOR_PING_INTERVAL")
	overrideDuration(&cfg.ClientTimeout, "EDITOR_CLIENT_TIMEOUT")
	overrideDuration(&cfg.TokenTTL, "EDITOR_TOKEN_TTL")
}

func overrideDuration(target *Duration, key string) {
	value := os.Getenv(key)
	if value == "" {
		return
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return
	}

	*target = Duration(parsed)
}

func splitOrigins(origins string) []string {
	parts := strings.Split(origins, ",")

	var result []string

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func sanitize(cfg *Config) {
	defaults := Default()

	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaults.DatabasePath
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = defaults.AllowedOrigins
	}

	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaults.PingInterval
	}

	if cfg.ClientTimeout <= 0 {
		cfg.ClientTimeout = defaults.ClientTimeout
	}

	// A client that never answers a ping must be able to miss at least one.
	if cfg.ClientTimeout <= cfg.PingInterval {
		cfg.ClientTimeout = 2 * cfg.PingInterval
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaults.TokenTTL
	}
}
