package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyiz/internal/contentcache"
	"github.com/abhisek/studyiz/internal/kv"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STUDYIZ_CONFIG_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("STUDYIZ_STORAGE_BACKEND", "")
	t.Setenv("STUDYIZ_CACHE_MAX_BYTES", "")
	t.Setenv("STUDYIZ_DB", "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, contentcache.DefaultMaxBytes, cfg.Cache.MaxBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.File)
}

func TestLoad_FileFromConfigHome(t *testing.T) {
	dir := isolate(t)
	yaml := "storage:\n  backend: memory\n  compress: true\ncache:\n  max_bytes: 2048\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "studyiz.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.Compress)
	assert.Equal(t, 2048, cfg.Cache.MaxBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "studyiz.yaml"), cfg.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\n"), 0o644))
	t.Setenv("STUDYIZ_STORAGE_BACKEND", "memory")
	t.Setenv("STUDYIZ_CACHE_MAX_BYTES", "4096")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, 4096, cfg.Cache.MaxBytes)
}

func TestLoad_ExpandsHome(t *testing.T) {
	isolate(t)
	t.Setenv("STUDYIZ_DB", "~/studyiz/progress.db")

	home, err := homedir.Dir()
	require.NoError(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "studyiz", "progress.db"), cfg.DB)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Storage: StorageConfig{Backend: BackendSQLite, CompressLevel: 3},
			Cache:   CacheConfig{MaxBytes: 10},
		}
	}
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"ok", func(c *Config) {}, false},
		{"bad backend", func(c *Config) { c.Storage.Backend = "etcd" }, true},
		{"postgres without url", func(c *Config) { c.Storage.Backend = BackendPostgres }, true},
		{"postgres", func(c *Config) {
			c.Storage.Backend = BackendPostgres
			c.Storage.PostgresURL = "postgres://localhost/studyiz"
		}, false},
		{"zero max bytes", func(c *Config) { c.Cache.MaxBytes = 0 }, true},
		{"bad level", func(c *Config) { c.Storage.Compress = true; c.Storage.CompressLevel = 40 }, true},
		{"level ignored without compression", func(c *Config) { c.Storage.CompressLevel = 40 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOpenKV(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite", func(t *testing.T) {
		cfg := Config{DB: filepath.Join(t.TempDir(), "sub", "studyiz.db"), Storage: StorageConfig{Backend: BackendSQLite}}
		s, err := cfg.OpenKV(ctx)
		require.NoError(t, err)
		defer s.Close()
		require.NoError(t, s.Put(ctx, "k", []byte("v")))
	})

	t.Run("memory compressed", func(t *testing.T) {
		cfg := Config{Storage: StorageConfig{Backend: BackendMemory, Compress: true, CompressLevel: 3}}
		s, err := cfg.OpenKV(ctx)
		require.NoError(t, err)
		defer s.Close()
		_, ok := s.(*kv.Compressed)
		assert.True(t, ok)
	})
}

func TestEnsureFile(t *testing.T) {
	dir := isolate(t)

	path, err := DefaultFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "studyiz.yaml"), path)

	created, err := EnsureFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	// The written defaults load and validate.
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, contentcache.DefaultMaxBytes, cfg.Cache.MaxBytes)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))
	created, err = EnsureFile(path)
	require.NoError(t, err)
	assert.False(t, created, "existing file is left alone")

	_, err = EnsureFile(filepath.Join(dir, "studyiz.toml"))
	assert.Error(t, err)
}
