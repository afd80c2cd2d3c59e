package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Cache.PageTTL)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "persx:", cfg.Redis.KeyPrefix)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "persx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9090"
database:
  driver: sqlite
  dsn: file:persx.db
convertkit:
  industry_tags:
    saas: 42
cors:
  allowed_origins: ["https://admin.persx.ai"]
`), 0o644))
	t.Setenv("PERSX_DATABASE_DSN", "file:override.db")
	t.Setenv("PERSX_CACHE_PAGE_TTL", "1m")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file:override.db", cfg.Database.DSN)
	assert.Equal(t, time.Minute, cfg.Cache.PageTTL)
	assert.Equal(t, int64(42), cfg.ConvertKit.IndustryTags["saas"])
	assert.Equal(t, []string{"https://admin.persx.ai"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigRequiresSecretInProduction(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PERSX_ENV", "production")
	_, err := LoadConfig("")
	assert.Error(t, err)

	t.Setenv("PERSX_AUTH_JWT_SECRET", "a-real-secret")
	_, err = LoadConfig("")
	assert.NoError(t, err)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
