package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Contains(t, cfg.DSN(), "dbname=virtualkitchen")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_PATH", "/tmp/kitchen.db")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test;http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/kitchen.db", cfg.DSN())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	base := Config{JWTSecret: "x", DBDriver: "postgres", StorageDriver: "local", TokenTTL: time.Hour}
	require.NoError(t, base.Validate())

	bad := base
	bad.DBDriver = "mysql"
	assert.Error(t, bad.Validate())

	bad = base
	bad.StorageDriver = "s3"
	assert.ErrorContains(t, bad.Validate(), "S3_BUCKET")

	bad.S3Bucket = "images"
	assert.NoError(t, bad.Validate())

	bad = base
	bad.TokenTTL = 0
	assert.Error(t, bad.Validate())
}
