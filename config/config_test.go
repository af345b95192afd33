package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `server:
  addr: ":9999"
scoring:
  candidate_cap: 5
  seed: 42
metrics:
  prometheus_enabled: true
  prometheus_port: ":9091"
history:
  enabled: true
  backend: "sqlite"
  path: "history.db"
mqtt:
  enabled: false
tomtom:
  api_key: "secret"
  limit: 6
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server addr", cfg.Server.Addr, ":9999"},
		{"candidate cap", cfg.Scoring.CandidateCap, 5},
		{"seed", cfg.Scoring.Seed, int64(42)},
		{"prom enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prom port", cfg.Metrics.PrometheusPort, ":9091"},
		{"history backend", cfg.History.Backend, "sqlite"},
		{"history path", cfg.History.Path, "history.db"},
		{"tomtom key", cfg.TomTom.APIKey, "secret"},
		{"tomtom limit", cfg.TomTom.Limit, 6},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: {}\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Scoring.CandidateCap != 8 {
		t.Errorf("default cap = %d", cfg.Scoring.CandidateCap)
	}
	if cfg.History.Backend != "jsonl" {
		t.Errorf("default history backend = %q", cfg.History.Backend)
	}
	if cfg.TomTom.BaseURL == "" {
		t.Error("tomtom base url should default")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CW_SERVER__ADDR", ":7070")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env override ignored: %q", cfg.Server.Addr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "config.toml")); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("history:\n  backend: \"csv\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected error for unknown history backend")
	}
}
