// Package config provides the configuration for the story server binary,
// loaded from YAML and/or environment variables.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root server configuration.
// Source priority:
//  1. explicit path passed to MustLoad/Load;
//  2. the CONFIG_PATH environment variable;
//  3. ./local.yaml in the working directory;
//  4. environment variables only.
type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Cache    CacheConfig    `yaml:"cache"`
	Engine   EngineConfig   `yaml:"engine"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig holds the server listen settings.
type HTTPConfig struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address in host:port form.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// UpstreamConfig holds the Hacker News API client settings.
type UpstreamConfig struct {
	BaseURL   string        `yaml:"base_url" env:"HN_BASE_URL" env-default:"https://hacker-news.firebaseio.com"`
	UserAgent string        `yaml:"user_agent" env:"HN_USER_AGENT" env-default:"hn-aggregator/0.1.0"`
	Timeout   time.Duration `yaml:"timeout" env:"HN_TIMEOUT" env-default:"10s"`
}

// CacheConfig holds the ID cache settings.
type CacheConfig struct {
	// TTL is the validity window of the cached ID sequence.
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
	// Backend selects the store: "memory" or "redis".
	Backend   string `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
	RedisAddr string `yaml:"redis_addr" env:"CACHE_REDIS_ADDR" env-default:"localhost:6379"`
}

// EngineConfig holds the aggregation engine settings.
type EngineConfig struct {
	// SearchScanLimit is the corpus prefix size a search scans.
	SearchScanLimit int `yaml:"search_scan_limit" env:"SEARCH_SCAN_LIMIT" env-default:"500"`
	// MaxConcurrency caps in-flight item fetches per batch (0 = unbounded).
	MaxConcurrency int `yaml:"max_concurrency" env:"MAX_CONCURRENCY" env-default:"0"`
	// DefaultPageSize applies when a request omits the size parameter.
	DefaultPageSize int `yaml:"default_page_size" env:"DEFAULT_PAGE_SIZE" env-default:"10"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY" env-default:"false"`
}

// MustLoad wraps Load and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("load config: %v", err))
	}
	return cfg
}

// Load reads the configuration following the documented source priority.
func Load(path string) (*Config, error) {
	candidate := path
	if candidate == "" {
		candidate = os.Getenv("CONFIG_PATH")
	}
	if candidate == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			candidate = "local.yaml"
		}
	}

	var cfg Config
	if candidate != "" {
		if err := cleanenv.ReadConfig(candidate, &cfg); err != nil {
			return nil, fmt.Errorf("read config %q: %w", candidate, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}
