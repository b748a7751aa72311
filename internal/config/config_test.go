package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/tally/internal/errors"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Addr() != "localhost:3000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.Counter.Message != "Count" || cfg.Counter.Step != nil {
		t.Errorf("Counter = %+v", cfg.Counter)
	}
	if cfg.ShutdownTimeout() != 10*time.Second {
		t.Errorf("ShutdownTimeout() = %v", cfg.ShutdownTimeout())
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
server:
  port: 8080
  shutdownTimeout: 2s
counter:
  message: Clicks
  step: 5
card:
  title: Hello
metrics:
  enabled: false
log:
  level: debug
  format: json
dev: true
`)
	cfg, err := Parse(data, ".yaml", "tally.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Server.Port != 8080 || cfg.Server.Host != DefaultHost {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.ShutdownTimeout() != 2*time.Second {
		t.Errorf("ShutdownTimeout() = %v", cfg.ShutdownTimeout())
	}
	if cfg.Counter.Message != "Clicks" || intValue(cfg.Counter.Step) != 5 {
		t.Errorf("Counter = %+v", cfg.Counter)
	}
	if cfg.Card.Title != "Hello" {
		t.Errorf("Card = %+v", cfg.Card)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be disabled")
	}
	if cfg.Metrics.Path != DefaultMetricsPath {
		t.Errorf("metrics path default lost: %q", cfg.Metrics.Path)
	}
	if !cfg.Dev {
		t.Error("dev should be true")
	}
	if cfg.Path() != "tally.yaml" {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{"counter":{"message":"Hits","step":2},"tracing":{"enabled":true}}`)
	cfg, err := Parse(data, ".json", "tally.json")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Counter.Message != "Hits" || intValue(cfg.Counter.Step) != 2 {
		t.Errorf("Counter = %+v", cfg.Counter)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.TracerName != DefaultNamespace {
		t.Errorf("Tracing = %+v", cfg.Tracing)
	}
}

func TestParseEmptyYAML(t *testing.T) {
	cfg, err := Parse(nil, ".yml", "tally.yml")
	if err != nil {
		t.Fatalf("empty file should parse: %v", err)
	}
	if cfg.Counter.Message != DefaultMessage {
		t.Errorf("Message = %q", cfg.Counter.Message)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		ext      string
		wantCode string
		wantText string
	}{
		{"non-integer step", "counter:\n  step: two\n", ".yaml", "E020", "parse"},
		{"unknown yaml key", "countr:\n  step: 1\n", ".yaml", "E020", "parse"},
		{"unknown json key", `{"nope":1}`, ".json", "E020", "parse"},
		{"bad port", "server:\n  port: 70000\n", ".yaml", "E020", "server.port"},
		{"bad timeout", "server:\n  shutdownTimeout: soon\n", ".yaml", "E020", "shutdownTimeout"},
		{"negative timeout", "server:\n  shutdownTimeout: -1s\n", ".yaml", "E020", "shutdownTimeout"},
		{"bad metrics path", "metrics:\n  path: metrics\n", ".yaml", "E020", "metrics.path"},
		{"bad log level", "log:\n  level: loud\n", ".yaml", "E020", "log.level"},
		{"bad log format", "log:\n  format: xml\n", ".yaml", "E020", "log.format"},
		{"unsupported extension", "", ".toml", "E022", "tally.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext, "tally"+tt.ext)
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.Code(err) != tt.wantCode {
				t.Errorf("code = %q, want %q (%v)", errors.Code(err), tt.wantCode, err)
			}
			if !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load on empty dir: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("defaults should have no path, got %q", cfg.Path())
	}

	path := filepath.Join(dir, "tally.json")
	if err := os.WriteFile(path, []byte(`{"counter":{"step":3}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if intValue(cfg.Counter.Step) != 3 || cfg.Path() != path {
		t.Errorf("cfg = %+v path %q", cfg.Counter, cfg.Path())
	}

	// YAML wins over JSON.
	yamlPath := filepath.Join(dir, "tally.yaml")
	if err := os.WriteFile(yamlPath, []byte("counter:\n  step: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if intValue(cfg.Counter.Step) != 4 {
		t.Errorf("Step = %d, want 4", intValue(cfg.Counter.Step))
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if errors.Code(err) != "E021" {
		t.Errorf("code = %q, want E021", errors.Code(err))
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("expected JSON record, got %s", out)
	}

	buf.Reset()
	LogConfig{Level: "bogus"}.NewLogger(&buf).Info("fallback")
	if !strings.Contains(buf.String(), "msg=fallback") {
		t.Errorf("expected text record at info, got %s", buf.String())
	}
}

// intValue dereferences p, reporting nil as -1.
func intValue(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func TestParseZeroStepIsKept(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"yaml", "counter:\n  step: 0\n", ".yaml"},
		{"json", `{"counter":{"step":0}}`, ".json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.ext, "tally"+tt.ext)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if cfg.Counter.Step == nil {
				t.Fatal("explicit step 0 was dropped")
			}
			if *cfg.Counter.Step != 0 {
				t.Errorf("Step = %d, want 0", *cfg.Counter.Step)
			}
		})
	}
}

func TestParseStepAbsentIsNil(t *testing.T) {
	cfg, err := Parse([]byte("counter:\n  message: Hits\n"), ".yaml", "tally.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Counter.Step != nil {
		t.Errorf("Step = %d, want nil", *cfg.Counter.Step)
	}
}

func TestParseCardCode(t *testing.T) {
	data := []byte("card:\n  title: Status\n  payload: ready\n  code: 200\n")
	cfg, err := Parse(data, ".yaml", "tally.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if intValue(cfg.Card.Code) != 200 || cfg.Card.Payload != "ready" {
		t.Errorf("Card = %+v", cfg.Card)
	}

	cfg, err = Parse([]byte("card:\n  title: Status\n"), ".yaml", "tally.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Card.Code != nil {
		t.Errorf("Code = %d, want nil", *cfg.Card.Code)
	}
}
