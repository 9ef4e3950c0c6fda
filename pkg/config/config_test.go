package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOCK_CREDENTIAL_PATH", "/tmp/creds.db")

	cfg, err := Load("stockmobile")
	require.NoError(t, err)

	assert.Equal(t, "stockmobile", cfg.ServiceName)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.API.Timeout)
	assert.Equal(t, BackendBolt, cfg.Credential.Backend)
	assert.Equal(t, "/tmp/creds.db", cfg.Credential.Path)
	assert.Equal(t, "8080", cfg.Stub.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOCK_API_BASE_URL", "http://inventory.local:9000")
	t.Setenv("STOCK_HTTP_TIMEOUT", "5s")
	t.Setenv("STOCK_CREDENTIAL_BACKEND", "redis")
	t.Setenv("STOCK_REDIS_DB", "3")

	cfg, err := Load("stockmobile")
	require.NoError(t, err)

	assert.Equal(t, "http://inventory.local:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, BackendRedis, cfg.Credential.Backend)
	assert.Equal(t, 3, cfg.Credential.RedisDB)
	assert.NotEmpty(t, cfg.Credential.Path)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STOCK_CREDENTIAL_BACKEND", "keychain")

	_, err := Load("stockmobile")
	assert.Error(t, err)
}
