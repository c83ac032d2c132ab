package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. WDYLT_STORAGE_BACKEND.
const EnvPrefix = "WDYLT"

// Config holds application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Redis     RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	LinkCheck LinkCheckConfig `mapstructure:"linkcheck" yaml:"linkcheck"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`

	// QuickAddFolder is the folder path `wdylt add` files new bookmarks under.
	QuickAddFolder string `mapstructure:"quick_add_folder" yaml:"quick_add_folder"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // json, sqlite, redis
	Path    string `mapstructure:"path" yaml:"path"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

type ServerConfig struct {
	Addr            string          `mapstructure:"addr" yaml:"addr"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps" yaml:"rps"`
	Burst int     `mapstructure:"burst" yaml:"burst"`
}

type AuthConfig struct {
	JWTSecret     string   `mapstructure:"jwt_secret" yaml:"jwt_secret,omitempty"`
	AdminSubjects []string `mapstructure:"admin_subjects" yaml:"admin_subjects"`
}

type LinkCheckConfig struct {
	Concurrency    int           `mapstructure:"concurrency" yaml:"concurrency"`
	Timeout        time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ExcludeDomains []string      `mapstructure:"exclude_domains" yaml:"exclude_domains"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Dev   bool   `mapstructure:"dev" yaml:"dev"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: "json"},
		Redis:   RedisConfig{Addr: "localhost:6379"},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       RateLimitConfig{RPS: 10, Burst: 20},
		},
		LinkCheck: LinkCheckConfig{
			Concurrency:    10,
			Timeout:        10 * time.Second,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
		Log:            LogConfig{Level: "info"},
		QuickAddFolder: "Read Later",
	}
}

// setDefaults registers every default with viper so env overrides apply to them.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.prefix", d.Redis.Prefix)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.rate_limit.rps", d.Server.RateLimit.RPS)
	v.SetDefault("server.rate_limit.burst", d.Server.RateLimit.Burst)
	v.SetDefault("auth.jwt_secret", d.Auth.JWTSecret)
	v.SetDefault("auth.admin_subjects", d.Auth.AdminSubjects)
	v.SetDefault("linkcheck.concurrency", d.LinkCheck.Concurrency)
	v.SetDefault("linkcheck.timeout", d.LinkCheck.Timeout)
	v.SetDefault("linkcheck.exclude_domains", d.LinkCheck.ExcludeDomains)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.dev", d.Log.Dev)
	v.SetDefault("quick_add_folder", d.QuickAddFolder)
}

// New returns a viper instance with defaults, env binding, and the config
// file location set. path may be empty to use the default location.
func New(path string) (*viper.Viper, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	v.SetConfigFile(path)
	return v, nil
}

// Load reads the config file (if present) and decodes the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, cfg.Validate()
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "json", "sqlite", "redis":
	default:
		return fmt.Errorf("storage.backend must be json, sqlite or redis, got %q", c.Storage.Backend)
	}
	if c.LinkCheck.Concurrency < 1 {
		return fmt.Errorf("linkcheck.concurrency must be positive, got %d", c.LinkCheck.Concurrency)
	}
	if c.Server.RateLimit.Burst < 1 {
		return fmt.Errorf("server.rate_limit.burst must be positive, got %d", c.Server.RateLimit.Burst)
	}
	return nil
}

// WriteDefault writes the default configuration as YAML.
// An existing file is left untouched and reported via os.ErrExist.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s: %w", path, os.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/wdylt/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "wdylt", "config.yaml"), nil
}
