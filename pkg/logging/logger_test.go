package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/wdm0006/tvetl/pkg/config"
	"github.com/wdm0006/tvetl/pkg/logging"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf, false)
	if err != nil {
		t.Fatalf("NewWithWriter returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("cleaning complete", zap.Int("rows", 3))
	_ = logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "cleaning complete" || entry["rows"] != float64(3) {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestConsoleLoggerWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(config.LoggingConfig{Level: "debug", Format: "console"}, &buf, false)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("fetching", zap.String("date", "2024-01-01"))
	_ = logger.Sync()
	out := buf.String()
	if !strings.Contains(out, "DEBUG") || !strings.Contains(out, "fetching") {
		t.Fatalf("unexpected console output %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color codes, got %q", out)
	}
}

func TestRejectsUnknownSettings(t *testing.T) {
	var buf bytes.Buffer
	if _, err := logging.NewWithWriter(config.LoggingConfig{Level: "loud"}, &buf, false); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := logging.NewWithWriter(config.LoggingConfig{Format: "xml"}, &buf, false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestErrorEntriesCarryNoStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf, false)
	if err != nil {
		t.Fatalf("NewWithWriter returned error: %v", err)
	}
	logger.Error("fetch schedule", zap.String("date", "2024-01-02"))
	_ = logger.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := entry["stacktrace"]; ok {
		t.Fatalf("error entry should not carry a stacktrace: %v", entry)
	}
	if entry["level"] != "error" {
		t.Fatalf("unexpected level %v", entry["level"])
	}
}
