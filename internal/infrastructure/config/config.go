package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "COINMARKER"

type Config struct {
	App struct {
		QuietPeriodMs int    `toml:"quiet_period_ms"`
		LogLevel      string `toml:"log_level"`
	} `toml:"app"`

	Server struct {
		Addr                 string `toml:"addr"`
		ReadHeaderTimeoutSec int    `toml:"read_header_timeout_sec"`
	} `toml:"server"`

	Coinpaprika struct {
		BaseURL    string `toml:"base_url"` // e.g. https://api.coinpaprika.com
		TimeoutSec int    `toml:"timeout_sec"`
		Coalesce   bool   `toml:"coalesce"`
	} `toml:"coinpaprika"`

	Storage struct {
		Enabled bool `toml:"enabled"`

		SQLite struct {
			Enabled bool   `toml:"enabled"`
			Path    string `toml:"path"`
		} `toml:"sqlite"`

		Postgres struct {
			Enabled bool   `toml:"enabled"`
			DSN     string `toml:"dsn"`
		} `toml:"postgres"`

		Redis struct {
			Enabled    bool   `toml:"enabled"`
			Addr       string `toml:"addr"`
			Password   string `toml:"password"`
			DB         int    `toml:"db"`
			Prefix     string `toml:"prefix"`
			TTLSeconds int    `toml:"ttl_seconds"`
			Stream     string `toml:"stream"`
			Channel    string `toml:"channel"`
		} `toml:"redis"`
	} `toml:"storage"`
}

// envOverrides 环境变量覆盖项（前缀 COINMARKER_），空值表示不覆盖
type envOverrides struct {
	LogLevel       string `envconfig:"LOG_LEVEL"`
	QuietPeriodMs  int    `envconfig:"QUIET_PERIOD_MS"`
	ServerAddr     string `envconfig:"SERVER_ADDR"`
	CoinpaprikaURL string `envconfig:"COINPAPRIKA_URL"`
	SQLitePath     string `envconfig:"SQLITE_PATH"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN"`
	RedisAddr      string `envconfig:"REDIS_ADDR"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
}

// Load 读取 toml 配置（path 为空时只用默认值），再叠加 .env 与环境变量
func Load(path string) (*Config, error) {
	var cfg Config
	if strings.TrimSpace(path) != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// .env is optional
	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) QuietPeriod() time.Duration {
	return time.Duration(c.App.QuietPeriodMs) * time.Millisecond
}

func (c *Config) CoinpaprikaTimeout() time.Duration {
	return time.Duration(c.Coinpaprika.TimeoutSec) * time.Second
}

func (c *Config) ReadHeaderTimeout() time.Duration {
	return time.Duration(c.Server.ReadHeaderTimeoutSec) * time.Second
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return err
	}

	if env.LogLevel != "" {
		cfg.App.LogLevel = env.LogLevel
	}
	if env.QuietPeriodMs > 0 {
		cfg.App.QuietPeriodMs = env.QuietPeriodMs
	}
	if env.ServerAddr != "" {
		cfg.Server.Addr = env.ServerAddr
	}
	if env.CoinpaprikaURL != "" {
		cfg.Coinpaprika.BaseURL = env.CoinpaprikaURL
	}
	if env.SQLitePath != "" {
		cfg.Storage.SQLite.Path = env.SQLitePath
	}
	if env.PostgresDSN != "" {
		cfg.Storage.Postgres.DSN = env.PostgresDSN
	}
	if env.RedisAddr != "" {
		cfg.Storage.Redis.Addr = env.RedisAddr
	}
	if env.RedisPassword != "" {
		cfg.Storage.Redis.Password = env.RedisPassword
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.QuietPeriodMs <= 0 {
		cfg.App.QuietPeriodMs = 500
	}
	if strings.TrimSpace(cfg.App.LogLevel) == "" {
		cfg.App.LogLevel = "info"
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadHeaderTimeoutSec <= 0 {
		cfg.Server.ReadHeaderTimeoutSec = 5
	}
	if strings.TrimSpace(cfg.Coinpaprika.BaseURL) == "" {
		cfg.Coinpaprika.BaseURL = "https://api.coinpaprika.com"
	}
	if cfg.Coinpaprika.TimeoutSec <= 0 {
		cfg.Coinpaprika.TimeoutSec = 10
	}
	if strings.TrimSpace(cfg.Storage.SQLite.Path) == "" {
		cfg.Storage.SQLite.Path = "data/coinmarker.db"
	}
	if strings.TrimSpace(cfg.Storage.Redis.Prefix) == "" {
		cfg.Storage.Redis.Prefix = "coinmarker"
	}
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Coinpaprika.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("coinpaprika.base_url invalid: %q", cfg.Coinpaprika.BaseURL)
	}

	if !cfg.Storage.Enabled {
		return nil
	}
	if cfg.Storage.Postgres.Enabled && strings.TrimSpace(cfg.Storage.Postgres.DSN) == "" {
		return errors.New("storage.postgres.dsn empty but enabled")
	}
	if cfg.Storage.Redis.Enabled && strings.TrimSpace(cfg.Storage.Redis.Addr) == "" {
		return errors.New("storage.redis.addr empty but enabled")
	}
	return nil
}
