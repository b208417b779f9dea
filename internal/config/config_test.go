package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("port = %d, want %d", cfg.Port, defaultPort)
	}
	if !cfg.IsDev() {
		t.Fatal("default env must be development")
	}
	if !strings.Contains(cfg.DSN, "@tcp(127.0.0.1:3306)/hookfire") {
		t.Fatalf("dsn = %q", cfg.DSN)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
port: 9000
env: production
jwt_secret: hunter2
database:
  host: db.internal
  name: hooks
scheduler:
  base_url: https://scheduler.example.com/api
  settle_ms: 250
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 || cfg.IsDev() {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !strings.Contains(cfg.DSN, "@tcp(db.internal:3306)/hooks") {
		t.Fatalf("dsn = %q", cfg.DSN)
	}
	if cfg.Scheduler.BaseURL != "https://scheduler.example.com/api" || cfg.Scheduler.SettleMS != 250 {
		t.Fatalf("scheduler = %+v", cfg.Scheduler)
	}
}

func TestExplicitDSNWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "dsn: user:pw@tcp(10.0.0.1:3306)/custom\ndatabase:\n  host: ignored\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DSN != "user:pw@tcp(10.0.0.1:3306)/custom" {
		t.Fatalf("dsn = %q", cfg.DSN)
	}
}
