package config

import (
	"log/slog"
	"strings"
	"testing"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataFile != "bank.json" || cfg.IDLength != 6 || cfg.PinScheme != "plain" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.StrictCredentials || cfg.MetricsAddr != "" {
		t.Errorf("optional features should be off: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
		t.Errorf("unexpected log settings: %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"BANK_DATA_FILE":          "/tmp/b.json",
		"BANK_ID_LENGTH":          "10",
		"BANK_PIN_SCHEME":         "BCRYPT",
		"BANK_STRICT_CREDENTIALS": "true",
		"BANK_METRICS_ADDR":       ":9090",
		"LOG_LEVEL":               "debug",
		"LOG_FORMAT":              "json",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DataFile != "/tmp/b.json" || cfg.IDLength != 10 || cfg.PinScheme != "bcrypt" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.StrictCredentials || cfg.MetricsAddr != ":9090" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
		t.Errorf("unexpected log settings: %+v", cfg)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	cases := map[string]string{
		"BANK_ID_LENGTH":          "3",
		"BANK_PIN_SCHEME":         "md5",
		"BANK_STRICT_CREDENTIALS": "maybe",
		"LOG_LEVEL":               "loud",
		"LOG_FORMAT":              "xml",
	}
	for key, val := range cases {
		_, err := FromEnv(env(map[string]string{key: val}))
		if err == nil {
			t.Errorf("%s=%s: expected error", key, val)
			continue
		}
		if !strings.Contains(err.Error(), key) {
			t.Errorf("%s=%s: error should name the variable, got %v", key, val, err)
		}
	}
}
