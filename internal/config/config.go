package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StorageSession = "session"
	StorageCookie  = "cookie"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Guard struct {
		Storage            string
		ServerRenderHeader string
	}
	Log struct {
		Level       string
		Development bool
	}
	SessionLifetime time.Duration
	InsecureCookies bool
}

// NeedsDB reports whether the configured token storage lives in the database.
func (c *Config) NeedsDB() bool {
	return c.Guard.Storage == StorageSession
}

// Load reads config from environment (JOBS_ prefix) and optional jobs-portal.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("JOBS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("jobs-portal")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("guard.storage", StorageSession)
	v.SetDefault("guard.server_render_header", "X-Render-Mode")
	v.SetDefault("log.level", "info")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Guard.Storage = strings.ToLower(v.GetString("guard.storage"))
	cfg.Guard.ServerRenderHeader = v.GetString("guard.server_render_header")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Development = v.GetBool("log.development")
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOBS_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	switch cfg.Guard.Storage {
	case StorageSession, StorageCookie:
	default:
		return nil, fmt.Errorf("invalid JOBS_GUARD_STORAGE %q: must be session or cookie", cfg.Guard.Storage)
	}

	if cfg.NeedsDB() {
		if cfg.DB.Driver == "" {
			return nil, fmt.Errorf("JOBS_DB_DRIVER is required (sqlite3, mysql, postgres)")
		}
		if cfg.DB.DSN == "" {
			return nil, fmt.Errorf("JOBS_DB_DSN is required")
		}
	}

	return cfg, nil
}

// LoadDB reads only the settings needed to reach the database.
func LoadDB() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if cfg.DB.Driver == "" || cfg.DB.DSN == "" {
		return nil, fmt.Errorf("JOBS_DB_DRIVER and JOBS_DB_DSN are required")
	}
	return cfg, nil
}
