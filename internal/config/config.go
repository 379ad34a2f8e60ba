// Package config loads studyiz settings from a YAML file and STUDYIZ_*
// environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"

	"github.com/abhisek/studyiz/internal/contentcache"
	"github.com/abhisek/studyiz/internal/kv"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config is the resolved application configuration.
type Config struct {
	DB         string        `mapstructure:"db"`
	Curriculum string        `mapstructure:"curriculum"`
	Storage    StorageConfig `mapstructure:"storage"`
	Cache      CacheConfig   `mapstructure:"cache"`
	Log        LogConfig     `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// StorageConfig selects and configures the key/value backend.
type StorageConfig struct {
	Backend       string `mapstructure:"backend"`
	RedisURL      string `mapstructure:"redis_url"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
	PostgresURL   string `mapstructure:"postgres_url"`
	Compress      bool   `mapstructure:"compress"`
	CompressLevel int    `mapstructure:"compress_level"`
}

// CacheConfig configures the content cache.
type CacheConfig struct {
	MaxBytes int `mapstructure:"max_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("curriculum", "")
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.redis_url", "redis://localhost:6379/0")
	v.SetDefault("storage.redis_prefix", "studyiz")
	v.SetDefault("storage.postgres_url", "")
	v.SetDefault("storage.compress", false)
	v.SetDefault("storage.compress_level", 3)
	v.SetDefault("cache.max_bytes", contentcache.DefaultMaxBytes)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// ConfigDirs returns the directories searched for studyiz.yaml, highest
// priority first.
func ConfigDirs() ([]string, error) {
	scope := gap.NewScope(gap.User, "studyiz")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		return nil, fmt.Errorf("resolve config dirs: %w", err)
	}
	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "studyiz")}, dirs...)
	}
	if c := os.Getenv("STUDYIZ_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}
	return dirs, nil
}

// Load reads configuration. When file is empty the default config
// directories are searched; a missing file is not an error.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		dirs, err := ConfigDirs()
		if err != nil {
			return nil, err
		}
		for _, d := range dirs {
			v.AddConfigPath(d)
		}
		v.SetConfigName("studyiz")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("studyiz")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// expandPaths resolves a leading ~ in path settings.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.DB, &c.Curriculum, &c.Log.File} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks enumerations and ranges.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresURL == "" {
			return fmt.Errorf("storage.postgres_url is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Cache.MaxBytes <= 0 {
		return fmt.Errorf("cache.max_bytes must be positive, got %d", c.Cache.MaxBytes)
	}
	if c.Storage.Compress && (c.Storage.CompressLevel < 1 || c.Storage.CompressLevel > 22) {
		return fmt.Errorf("storage.compress_level must be 1-22, got %d", c.Storage.CompressLevel)
	}
	return nil
}

// DBPath returns the configured SQLite path or the per-user default.
func (c *Config) DBPath() (string, error) {
	if c.DB != "" {
		return c.DB, kv.EnsureDir(c.DB)
	}
	return kv.DefaultDBPath()
}

// OpenKV opens the configured key/value backend.
func (c *Config) OpenKV(ctx context.Context) (kv.Store, error) {
	var (
		store kv.Store
		err   error
	)
	switch c.Storage.Backend {
	case BackendSQLite:
		var path string
		if path, err = c.DBPath(); err != nil {
			return nil, err
		}
		store, err = kv.OpenSQLite(path)
	case BackendRedis:
		store, err = kv.OpenRedis(ctx, c.Storage.RedisURL, c.Storage.RedisPrefix)
	case BackendPostgres:
		store, err = kv.OpenPostgres(ctx, c.Storage.PostgresURL)
	case BackendMemory:
		store = kv.NewMemory()
	default:
		err = fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}

	if !c.Storage.Compress {
		return store, nil
	}
	compressed, err := kv.WithCompression(store, c.Storage.CompressLevel)
	if err != nil {
		store.Close()
		return nil, err
	}
	return compressed, nil
}
