package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netstring.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, "max_payload_bytes = 16\nlisten_addr = \" :8000 \"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxPayloadBytes != 16 || cfg.ListenAddr != ":8000" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	def := Default()
	if cfg.ReadBufferBytes != def.ReadBufferBytes || cfg.DialAddr != def.DialAddr || cfg.MaxLengthDigits != def.MaxLengthDigits {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadZeroDisablesLimit(t *testing.T) {
	cfg, err := Load(writeFile(t, "max_payload_bytes = 0\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Limits().MaxPayloadBytes != 0 {
		t.Fatalf("expected unbounded payload, got %d", cfg.MaxPayloadBytes)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"negative limit": "max_payload_bytes = -1\n",
		"zero buffer":    "read_buffer_bytes = 0\n",
		"empty listen":   "listen_addr = \"  \"\n",
		"unknown key":    "max_payload = 3\n",
		"bad toml":       "max_payload_bytes = \n",
	}
	for name, body := range cases {
		if _, err := Load(writeFile(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "config load failed") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netstring.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	want := Default()
	want.LogLevel = "info"
	if cfg != want {
		t.Fatalf("template drifted from defaults: %+v", cfg)
	}
}

func TestLogLevelOnlySetWhenDefined(t *testing.T) {
	if Default().LogLevel != "" {
		t.Fatalf("default log level must be empty so env overrides survive")
	}
	cfg, err := Load(writeFile(t, "read_buffer_bytes = 128\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "" {
		t.Fatalf("log level set without log_level key: %q", cfg.LogLevel)
	}
	cfg, err = Load(writeFile(t, "log_level = \" debug \"\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level not applied: %q", cfg.LogLevel)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	if err != nil || cfg != Default() {
		t.Fatalf("expected defaults, got %+v err=%v", cfg, err)
	}
}
