package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8090

[database]
host = "localhost"
port = 5432
user = "engine"
password = "from-file"
dbname = "appointments"

[logs]
level = "debug"

[redis]
enabled = true
addr = "localhost:6379"

[booking]
attempt_limit = 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 3, cfg.Database.TxMaxAttempts)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 60, cfg.Booking.AttemptWindowSeconds)
	assert.Equal(t, 5, cfg.Booking.AttemptLimit)
	assert.Equal(t, "from-file", cfg.Database.Password)
}

func TestLoad_EnvOverridesPassword(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
	assert.Contains(t, cfg.Database.DSN(), "dbname=appointments")
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "[redis]\nenabled = true\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "database.host")
	assert.Contains(t, err.Error(), "redis.addr")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate_TrustedProxies(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	cfg.Server.TrustedProxies = []string{"10.0.0.0/8", "172.16.0.7"}
	assert.NoError(t, cfg.Validate())

	cfg.Server.TrustedProxies = []string{"load-balancer"}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
