package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_EMAILS", "a@example.com, b@example.com ,")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("GO_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "cleanup", cfg.MongoDatabase)
	assert.Equal(t, 10*time.Second, cfg.DBTimeout)
	assert.Equal(t, 10, cfg.RequestDailyCap)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.ResetTokenTTL)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AdminEmails)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFromFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("mongodb_uri: mongodb://db:27017\njwt_secret: from-file\nport: \"9000\"\n"), 0o600))

	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "9100")

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "9100", cfg.Port)
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:27017")
	_, err = Load("")
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"x", "y"}, splitList(" x ,, y "))
}
