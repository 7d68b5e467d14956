package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, BackendMemory, cfg.Session.Backend)
	assert.Equal(t, "plain", cfg.Auth.CredentialMode)
	assert.False(t, cfg.Auth.RestrictUpdatesToAgency)
	assert.False(t, cfg.Location.Validate)
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/complaints")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_CREDENTIAL_MODE", "bcrypt")
	t.Setenv("AUTH_RESTRICT_UPDATES_TO_AGENCY", "true")
	t.Setenv("STORE_CACHE_TTL_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, BackendPostgres, cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.UsesRedis())
	assert.True(t, cfg.Auth.RestrictUpdatesToAgency)
	assert.Equal(t, time.Minute, cfg.Store.CacheTTL())
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Store.Backend = BackendPostgres
	cfg.Postgres.DSN = ""
	assert.Error(t, cfg.Validate())

	cfg.Store.Backend = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg.Store.Backend = BackendMemory
	cfg.Session.Backend = "memcached"
	assert.Error(t, cfg.Validate())

	cfg.Session.Backend = BackendMemory
	cfg.Auth.CredentialMode = "md5"
	assert.Error(t, cfg.Validate())
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "redis")
	cfg, err := Load()
	require.NoError(t, err)

	fs := pflag.NewFlagSet("api", pflag.ContinueOnError)
	flags := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--addr", "127.0.0.1:7000", "--seed-file", "/tmp/seed.yaml", "--no-seed"}))
	require.NoError(t, flags.Apply(cfg))

	assert.Equal(t, "127.0.0.1", cfg.App.Host)
	assert.Equal(t, "7000", cfg.App.Port)
	assert.Equal(t, "/tmp/seed.yaml", cfg.Seed.Path)
	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, BackendRedis, cfg.Session.Backend, "unset flags leave env values alone")

	fs = pflag.NewFlagSet("api", pflag.ContinueOnError)
	flags = RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--addr", "no-port"}))
	assert.Error(t, flags.Apply(cfg))
}
