// internal/config/config.go
//
// 由環境變數（與可選的 .env 檔）載入執行設定。

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DataFile          string
	IDLength          int
	PinScheme         string
	StrictCredentials bool
	MetricsAddr       string
	LogLevel          slog.Level
	LogFormat         string
}

// Load 讀取 .env（若存在）後解析環境變數；已存在的環境變數不會被 .env 覆蓋。
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv 以 lookup 取得變數並套用預設值與檢查。
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		DataFile:    get("BANK_DATA_FILE", "bank.json"),
		PinScheme:   strings.ToLower(get("BANK_PIN_SCHEME", "plain")),
		MetricsAddr: get("BANK_METRICS_ADDR", ""),
		LogFormat:   strings.ToLower(get("LOG_FORMAT", "text")),
	}

	n, err := strconv.Atoi(get("BANK_ID_LENGTH", "6"))
	if err != nil || n < 4 || n > 32 {
		return Config{}, fmt.Errorf("BANK_ID_LENGTH must be an integer in 4..32, got %q", get("BANK_ID_LENGTH", ""))
	}
	cfg.IDLength = n

	if cfg.StrictCredentials, err = strconv.ParseBool(get("BANK_STRICT_CREDENTIALS", "false")); err != nil {
		return Config{}, fmt.Errorf("BANK_STRICT_CREDENTIALS: %w", err)
	}

	switch cfg.PinScheme {
	case "plain", "bcrypt":
	default:
		return Config{}, fmt.Errorf("BANK_PIN_SCHEME must be plain or bcrypt, got %q", cfg.PinScheme)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}
