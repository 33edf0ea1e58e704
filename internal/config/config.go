package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config agrupa toda la configuración del servicio.
// Se carga desde env vars; opcionalmente un archivo YAML (CONFIG_FILE)
// aporta valores base que las env vars pueden pisar.
type Config struct {
	Feishu  FeishuConfig  `yaml:"feishu"`
	Bitable BitableConfig `yaml:"bitable"`
	Auth    AuthConfig    `yaml:"auth"`

	Port                string `yaml:"port"`
	FeedIntervalMinutes int    `yaml:"feed_interval_minutes"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// FeishuConfig son las credenciales de la app self-build de Feishu.
type FeishuConfig struct {
	AppID     string `yaml:"app_id"`
	AppSecret string `yaml:"app_secret"`
}

// BitableConfig identifica la tabla destino en Bitable.
type BitableConfig struct {
	AppToken string `yaml:"app_token"`
	TableID  string `yaml:"table_id"`
}

// AuthConfig son los dos códigos de invitación compartidos.
type AuthConfig struct {
	EditorCode string `yaml:"editor_code"`
	ViewerCode string `yaml:"viewer_code"`
}

// Load arma la config: defaults -> YAML opcional -> env vars.
func Load() (Config, error) {
	cfg := Config{
		Port:                "3001",
		FeedIntervalMinutes: 180,
		Auth: AuthConfig{
			EditorCode: "editor123",
			ViewerCode: "viewer123",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Feishu.AppID = getString("FEISHU_APP_ID", cfg.Feishu.AppID)
	cfg.Feishu.AppSecret = getString("FEISHU_APP_SECRET", cfg.Feishu.AppSecret)
	cfg.Bitable.AppToken = getString("BITABLE_APP_TOKEN", cfg.Bitable.AppToken)
	cfg.Bitable.TableID = getString("BITABLE_TABLE_ID", cfg.Bitable.TableID)
	cfg.Port = getString("SERVER_PORT", cfg.Port)
	cfg.Auth.EditorCode = getString("ACCESS_CODE_EDITOR", cfg.Auth.EditorCode)
	cfg.Auth.ViewerCode = getString("ACCESS_CODE_VIEWER", cfg.Auth.ViewerCode)
	cfg.FeedIntervalMinutes = getInt("FEED_INTERVAL_MINUTES", cfg.FeedIntervalMinutes)
	cfg.LogLevel = getString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getString("LOG_FORMAT", cfg.LogFormat)

	return cfg, nil
}

// FeishuConfigured indica si hay credenciales suficientes para usar Bitable.
// Si falta algo, el router cae al store in-memory (modo dev).
func (c Config) FeishuConfigured() bool {
	return c.Feishu.AppID != "" && c.Feishu.AppSecret != "" &&
		c.Bitable.AppToken != "" && c.Bitable.TableID != ""
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
