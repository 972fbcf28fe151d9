package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: order-api
  http_addr: ":8080"
  log_file: ./logs/app.log
mysql:
  dsn: "base-dsn"
  conn_max_lifetime: 30m
carrier:
  base_url: "https://carrier.example.com"
  timeout: 15s
  pickup_location: "Primary"
  max_delivery_days: 4
billing:
  tax_rate_percent: "18"
security:
  cart_jwt_secret: "base-secret"
`

const devYAML = `
mysql:
  dsn: "dev-dsn"
carrier:
  base_url: "http://localhost:9090"
`

func writeConfigs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(baseYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dev.yaml"), []byte(devYAML), 0o644))
	return dir
}

func TestLoadOverlayPrecedence(t *testing.T) {
	dir := writeConfigs(t)

	// base only
	cfg, err := Load(dir, "nonexistent-env")
	require.NoError(t, err)
	assert.Equal(t, "base-dsn", cfg.MySQL.DSN)

	// env yaml overrides base
	cfg, err = Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "dev-dsn", cfg.MySQL.DSN)
	assert.Equal(t, "http://localhost:9090", cfg.Carrier.BaseURL)
	assert.Equal(t, "Primary", cfg.Carrier.PickupLocation, "untouched keys keep base values")

	// environment variables override both
	t.Setenv("ORDERAPI_MYSQL__DSN", "env-dsn")
	t.Setenv("ORDERAPI_CARRIER__TOKEN", "env-token")
	cfg, err = Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "env-dsn", cfg.MySQL.DSN)
	assert.Equal(t, "env-token", cfg.Carrier.Token)
}

func TestLoadParsesDurations(t *testing.T) {
	dir := writeConfigs(t)

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.MySQL.ConnMaxLifetime)
	assert.Equal(t, 15*time.Second, cfg.Carrier.Timeout)
}

func TestValidateRejectsMissingRequired(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("app:\n  name: x\n"), 0o644))

	_, err := Load(dir, "dev")
	assert.Error(t, err)
}
