package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TAKEOFF_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Estimate.Concurrency)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "takeoff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
log:
  level: debug
catalog:
  resources_path: /data/resources.csv
estimate:
  concurrency: 8
tracing:
  enabled: true
  sample_ratio: 0.5
`), 0o644))

	t.Setenv("TAKEOFF_CONFIG_PATH", path)
	t.Setenv("TAKEOFF_SERVER_PORT", "7070")
	t.Setenv("TAKEOFF_TRACING_ENDPOINT", "collector:4318")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port, "env overrides the file")
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "defaults survive a partial file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/data/resources.csv", cfg.Catalog.ResourcesPath)
	assert.Equal(t, 8, cfg.Estimate.Concurrency)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 0.5, cfg.Tracing.SampleRatio)
	assert.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("TAKEOFF_CONFIG_PATH", "")
	t.Setenv("TAKEOFF_SERVER_PORT", "eighty")

	_, err := Load()
	assert.ErrorContains(t, err, "TAKEOFF_SERVER_PORT")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("TAKEOFF_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Estimate.Concurrency = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Tracing.SampleRatio = 2
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
