package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Trivia.URL != defaultTriviaURL {
		t.Fatalf("expected default trivia url, got %q", cfg.Trivia.URL)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Fatalf("unexpected log config %+v", cfg.Log)
	}
}

func TestLoadOverridesFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "4000"
trivia:
  timeout: 2s
  rate_limit: 12
redis:
  addr: localhost:6379
  key: ids
log:
  level: warn
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "4000" || cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Key != "ids" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Trivia.RateLimit != 12 || TTLDuration(cfg.Trivia.Timeout, 0) != 2*time.Second {
		t.Fatalf("unexpected trivia config %+v", cfg.Trivia)
	}
	if cfg.Trivia.URL != defaultTriviaURL {
		t.Fatalf("expected default trivia url to survive, got %q", cfg.Trivia.URL)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("expected env to win for log config, got %+v", cfg.Log)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unterminated"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected yaml error")
	}
}

func TestResolvePortPrecedence(t *testing.T) {
	cfg := Default()

	t.Setenv("PORT", "")
	if got := cfg.ResolvePort(""); got != DefaultPort {
		t.Fatalf("expected default port, got %s", got)
	}

	cfg.Server.Port = "4000"
	if got := cfg.ResolvePort(""); got != "4000" {
		t.Fatalf("expected config port, got %s", got)
	}

	t.Setenv("PORT", "5000")
	if got := cfg.ResolvePort(""); got != "5000" {
		t.Fatalf("expected env port, got %s", got)
	}

	if got := cfg.ResolvePort("6000"); got != "6000" {
		t.Fatalf("expected flag port, got %s", got)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("bogus", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for bogus value, got %v", got)
	}
	if got := TTLDuration("90s", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}
