package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "tvetl ") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestProfileCommandOnEmptyDir(t *testing.T) {
	base := t.TempDir()
	dataDir := filepath.Join(base, "json")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(base, "tvetl.yaml")
	body := "collect:\n  data_dir: " + dataDir + "\nprofile:\n  path: \"\"\nlogging:\n  format: json\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"profile", "--config", cfgPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "0 rows") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestInvalidRangeFlag(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"collect", "--start", "2024-02-01", "--end", "2024-01-01"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected validation error")
	}
}
