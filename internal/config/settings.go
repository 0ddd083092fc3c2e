package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. IMMOCALC_SERVER_ADDR
const EnvPrefix = "IMMOCALC"

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Settings configures the HTTP API process
type Settings struct {
	Server ServerSettings `mapstructure:"server"`
	Cache  CacheSettings  `mapstructure:"cache"`
	Log    LogSettings    `mapstructure:"log"`
}

type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CacheSettings struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   RedisSettings `mapstructure:"redis"`
}

type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json|console
}

func setSettingsDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadSettings reads settings from an optional file, then applies IMMOCALC_* environment overrides.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setSettingsDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

// Validate checks the settings for values the server cannot start with
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	switch s.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if s.Cache.Redis.Addr == "" {
			return fmt.Errorf("cache.redis.addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q (want %s, %s or %s)", s.Cache.Backend, CacheNone, CacheMemory, CacheRedis)
	}
	if s.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}
	return nil
}
