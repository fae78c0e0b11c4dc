package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromEnv(t *testing.T) {
	t.Setenv("THOUGHTS_JWT_SECRET", "s3cret")
	t.Setenv("THOUGHTS_HTTP_PORT", "9090")
	t.Setenv("THOUGHTS_DB_DRIVER", "sqlite")
	t.Setenv("THOUGHTS_SQLITE_PATH", "/tmp/test.db")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, ":9090", cfg.GetHTTPAddr())
	assert.NotZero(t, cfg.BcryptCost)
}

func TestNewRequiresSecret(t *testing.T) {
	t.Setenv("THOUGHTS_JWT_SECRET", "")

	_, err := New()
	require.Error(t, err)
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "mongodb"
	require.Error(t, cfg.Validate())
}

func TestValidatePostgresNeedsDSN(t *testing.T) {
	cfg := NewForTesting()
	cfg.DBDriver = "postgres"
	cfg.PostgresDSN = ""
	require.Error(t, cfg.Validate())
}
