package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BOARD_SIZE", "SEARCH_DEPTH", "SEARCH_PRUNING", "BOT_DELAY_MS", "LOG_LEVEL", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}
	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.BoardSize != 5 || cfg.SearchDepth != 1 || cfg.SearchPruning {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.BotDelay != 200*time.Millisecond {
		t.Fatalf("expected 200ms bot delay, got %s", cfg.BotDelay)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", cfg.LogLevel)
	}
	if len(cfg.AllowedOrigins) != 1 {
		t.Fatalf("expected only the localhost origin, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("BOARD_SIZE", "7")
	t.Setenv("SEARCH_DEPTH", "3")
	t.Setenv("SEARCH_PRUNING", "true")
	t.Setenv("BOT_DELAY_MS", "50")
	t.Setenv("SESSION_MAX_AGE_MINUTES", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := LoadConfig()
	if cfg.BoardSize != 7 || cfg.SearchDepth != 3 || !cfg.SearchPruning {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.BotDelay != 50*time.Millisecond || cfg.SessionMaxAge != 5*time.Minute {
		t.Fatalf("durations not applied: %s %s", cfg.BotDelay, cfg.SessionMaxAge)
	}
	if len(cfg.AllowedOrigins) != 3 || cfg.AllowedOrigins[2] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.AllowedOrigins)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", cfg.LogLevel)
	}
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("HEX_TEST_INT", "abc")
	t.Setenv("HEX_TEST_BOOL", "maybe")
	t.Setenv("HEX_TEST_DUR", "-3")
	if v := GetEnvAsInt("HEX_TEST_INT", 4); v != 4 {
		t.Fatalf("expected default int, got %d", v)
	}
	if v := GetEnvAsBool("HEX_TEST_BOOL", true); !v {
		t.Fatalf("expected default bool")
	}
	if v := GetEnvAsDuration("HEX_TEST_DUR", time.Second, time.Millisecond); v != time.Second {
		t.Fatalf("expected default duration, got %s", v)
	}
}

func TestLoadEnvFilesKeepsExistingValues(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HEX_TEST_A=fromfile\nHEX_TEST_B=fromfile\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	defer os.Chdir(wd)

	t.Setenv("HEX_TEST_A", "fromenv")
	t.Setenv("HEX_TEST_B", "")
	os.Unsetenv("HEX_TEST_B")

	LoadEnvFiles()
	if v := os.Getenv("HEX_TEST_A"); v != "fromenv" {
		t.Fatalf("existing variable overwritten: %q", v)
	}
	if v := os.Getenv("HEX_TEST_B"); v != "fromfile" {
		t.Fatalf("expected value from .env, got %q", v)
	}
}
