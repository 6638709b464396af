package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/time/rate"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "LOG_LEVEL", "LOG_FORMAT", "ROLLOVER_INTERVAL", "AUTO_CREDIT", "RATE_LIMIT", "RATE_BURST"} {
		t.Setenv(envPrefix+k, "")
	}

	if diff := cmp.Diff(DefaultConfig(), LoadFromEnv()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHOREBOARD_PORT", "9090")
	t.Setenv("CHOREBOARD_DB_PATH", "/tmp/board.db")
	t.Setenv("CHOREBOARD_LOG_LEVEL", "debug")
	t.Setenv("CHOREBOARD_LOG_FORMAT", "JSON")
	t.Setenv("CHOREBOARD_ROLLOVER_INTERVAL", "15s")
	t.Setenv("CHOREBOARD_AUTO_CREDIT", "true")
	t.Setenv("CHOREBOARD_RATE_LIMIT", "2.5")
	t.Setenv("CHOREBOARD_RATE_BURST", "4")

	want := &Config{
		Port:             "9090",
		DBPath:           "/tmp/board.db",
		LogLevel:         "debug",
		LogFormat:        "json",
		RolloverInterval: 15 * time.Second,
		AutoCredit:       true,
		RateLimit:        rate.Limit(2.5),
		RateBurst:        4,
	}
	got := LoadFromEnv()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got.Addr() != ":9090" {
		t.Errorf("addr = %q, want :9090", got.Addr())
	}
}

func TestLoadFromEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("CHOREBOARD_ROLLOVER_INTERVAL", "soon")
	t.Setenv("CHOREBOARD_AUTO_CREDIT", "maybe")
	t.Setenv("CHOREBOARD_RATE_LIMIT", "-1")
	t.Setenv("CHOREBOARD_RATE_BURST", "0")

	got := LoadFromEnv()
	def := DefaultConfig()
	if got.RolloverInterval != def.RolloverInterval || got.AutoCredit != def.AutoCredit ||
		got.RateLimit != def.RateLimit || got.RateBurst != def.RateBurst {
		t.Errorf("bad values should keep defaults, got %+v", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("CHOREBOARD_PORT", "")
	os.Unsetenv("CHOREBOARD_PORT")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CHOREBOARD_PORT=7070\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg := Load(path)
	t.Cleanup(func() { os.Unsetenv("CHOREBOARD_PORT") })
	if cfg.Port != "7070" {
		t.Errorf("port = %q, want 7070", cfg.Port)
	}
}
