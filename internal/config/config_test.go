package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3001" {
		t.Fatalf("Port = %q, want 3001", cfg.Port)
	}
	if cfg.FeedIntervalMinutes != 180 {
		t.Fatalf("FeedIntervalMinutes = %d, want 180", cfg.FeedIntervalMinutes)
	}
	if cfg.Auth.EditorCode != "editor123" || cfg.Auth.ViewerCode != "viewer123" {
		t.Fatalf("auth defaults = %+v", cfg.Auth)
	}
	if cfg.FeishuConfigured() {
		t.Fatalf("FeishuConfigured must be false without credentials")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yml")
	raw := []byte("port: \"9000\"\nfeed_interval_minutes: 120\nfeishu:\n  app_id: cli_file\n  app_secret: sec_file\nbitable:\n  app_token: tok_file\n  table_id: tbl_file\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("FEISHU_APP_ID", "cli_env")
	t.Setenv("FEED_INTERVAL_MINUTES", "240")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// El YAML aporta la base, la env var pisa.
	if cfg.Feishu.AppID != "cli_env" {
		t.Fatalf("AppID = %q, want cli_env", cfg.Feishu.AppID)
	}
	if cfg.Feishu.AppSecret != "sec_file" {
		t.Fatalf("AppSecret = %q, want sec_file", cfg.Feishu.AppSecret)
	}
	if cfg.Port != "9000" {
		t.Fatalf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.FeedIntervalMinutes != 240 {
		t.Fatalf("FeedIntervalMinutes = %d, want 240", cfg.FeedIntervalMinutes)
	}
	if !cfg.FeishuConfigured() {
		t.Fatalf("FeishuConfigured must be true with full credentials")
	}
}

func TestLoad_BadIntKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("FEED_INTERVAL_MINUTES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeedIntervalMinutes != 180 {
		t.Fatalf("FeedIntervalMinutes = %d, want default 180", cfg.FeedIntervalMinutes)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE",
		"FEISHU_APP_ID", "FEISHU_APP_SECRET",
		"BITABLE_APP_TOKEN", "BITABLE_TABLE_ID",
		"SERVER_PORT", "ACCESS_CODE_EDITOR", "ACCESS_CODE_VIEWER",
		"FEED_INTERVAL_MINUTES", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}
