package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := len(cfg.Cleaning.DropColumns); got != 25 {
		t.Fatalf("expected 25 prune columns, got %d", got)
	}
	start, end, err := cfg.Collect.Range()
	if err != nil {
		t.Fatal(err)
	}
	if days := int(end.Sub(start).Hours()/24) + 1; days != 31 {
		t.Fatalf("expected 31 days, got %d", days)
	}
	if cfg.Sink.Tables[0].KeyPath() != "_embedded.show.id" {
		t.Fatalf("shows key path: %q", cfg.Sink.Tables[0].KeyPath())
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tvetl.yaml")
	body := `
collect:
  start: "2024-02-01"
  end: "2024-02-03"
cleaning:
  one_hot_columns: ["_embedded.show.type", "_embedded.show.language"]
  skip: ["drop_sentinel"]
database:
  driver: postgres
  dsn: postgres://localhost/tv
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Collect.Start != "2024-02-01" || cfg.Collect.End != "2024-02-03" {
		t.Fatalf("dates not applied: %+v", cfg.Collect)
	}
	if cfg.Collect.DataDir != "json" {
		t.Fatalf("unset field should keep default, got %q", cfg.Collect.DataDir)
	}
	if len(cfg.Cleaning.OneHotColumns) != 2 || cfg.Cleaning.Skip[0] != "drop_sentinel" {
		t.Fatalf("cleaning not applied: %+v", cfg.Cleaning)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("driver: %q", cfg.Database.Driver)
	}
	if len(cfg.Cleaning.DropColumns) != 25 {
		t.Fatalf("prune list should keep default")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tvetl.toml")
	body := `
[api]
base_url = "http://localhost:9999"
timeout_seconds = 5

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9999" || cfg.API.Timeout().Seconds() != 5 {
		t.Fatalf("api: %+v", cfg.API)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("logging: %+v", cfg.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvDBDSN, "/tmp/other.db")
	t.Setenv(EnvEnd, "2024-01-02")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.DSN != "/tmp/other.db" {
		t.Fatalf("dsn: %q", cfg.Database.DSN)
	}
	if cfg.Collect.End != "2024-01-02" {
		t.Fatalf("end: %q", cfg.Collect.End)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"reversed range": func(c *Config) { c.Collect.Start, c.Collect.End = "2024-02-01", "2024-01-01" },
		"bad date":       func(c *Config) { c.Collect.Start = "01/01/2024" },
		"bad ratio":      func(c *Config) { c.Cleaning.MaxNullRatio = 1.5 },
		"bad driver":     func(c *Config) { c.Database.Driver = "mysql" },
		"bad table":      func(c *Config) { c.Sink.Tables[0].Table = "shows; drop" },
		"unmapped key":   func(c *Config) { c.Sink.Tables[1].Key = "nope" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tvetl.ini")
	if err := os.WriteFile(path, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for .ini")
	}
}

func TestSampleConfigsLoad(t *testing.T) {
	for _, name := range []string{"tvetl.yaml", "tvetl.toml"} {
		cfg, err := Load(filepath.Join("..", "..", "configs", name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if cfg.Collect.End != "2024-01-31" || cfg.Database.Driver != "sqlite" {
			t.Fatalf("%s: unexpected config %+v", name, cfg.Collect)
		}
	}
}
