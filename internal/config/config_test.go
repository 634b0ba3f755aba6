package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codecollab/editor-server/internal/config"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	require.Equal(t, config.Default(), cfg)
}

func TestLoad_ReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9090"
database_path: /tmp/editor.db
allowed_origins:
  - https://editor.example.com
ping_interval: 2s
client_timeout: 7s
token_ttl: 1h
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	if cfg.Addr != ":9090" {
		t.Errorf("expected :9090, got %q", cfg.Addr)
	}

	if cfg.DatabasePath != "/tmp/editor.db" {
		t.Errorf("unexpected database path %q", cfg.DatabasePath)
	}

	require.Equal(t, []string{"https://editor.example.com"}, cfg.AllowedOrigins)

	if time.Duration(cfg.PingInterval) != 2*time.Second {
		t.Errorf("unexpected ping interval %v", cfg.PingInterval)
	}

	if time.Duration(cfg.ClientTimeout) != 7*time.Second {
		t.Errorf("unexpected client timeout %v", cfg.ClientTimeout)
	}

	if time.Duration(cfg.TokenTTL) != time.Hour {
		t.Errorf("unexpected token ttl %v", cfg.TokenTTL)
	}
}

func TestLoad_RejectsUnparsableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [broken"), 0o644))

	if _, err := config.Load(path); err == nil {
		t.Error("expected an error for a broken config file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EDITOR_ADDR", ":7070")
	t.Setenv("EDITOR_DB_PATH", "override.db")
	t.Setenv("EDITOR_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("EDITOR_PING_INTERVAL", "3s")
	t.Setenv("EDITOR_CLIENT_TIMEOUT", "9s")
	t.Setenv("EDITOR_TOKEN_TTL", "30m")

	cfg, err := config.Load("")
	require.NoError(t, err)

	if cfg.Addr != ":7070" || cfg.DatabasePath != "override.db" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}

	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)

	if time.Duration(cfg.PingInterval) != 3*time.Second {
		t.Errorf("unexpected ping interval %v", cfg.PingInterval)
	}

	if time.Duration(cfg.ClientTimeout) != 9*time.Second {
		t.Errorf("unexpected client timeout %v", cfg.ClientTimeout)
	}

	if time.Duration(cfg.TokenTTL) != 30*time.Minute {
		t.Errorf("unexpected token ttl %v", cfg.TokenTTL)
	}
}

func TestLoad_IgnoresInvalidEnvDuration(t *testing.T) {
	t.Setenv("EDITOR_PING_INTERVAL", "soon")

	cfg, err := config.Load("")
	require.NoError(t, err)

	require.Equal(t, config.Default().PingInterval, cfg.PingInterval)
}

func TestLoad_SanitizeStretchesShortTimeout(t *testing.T) {
	t.Setenv("EDITOR_PING_INTERVAL", "10s")
	t.Setenv("EDITOR_CLIENT_TIMEOUT", "5s")

	cfg, err := config.Load("")
	require.NoError(t, err)

	if time.Duration(cfg.ClientTimeout) != 20*time.Second {
		t.Errorf("expected timeout stretched to 20s, got %v", cfg.ClientTimeout)
	}
}
