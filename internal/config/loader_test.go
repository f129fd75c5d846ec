package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestHome points HOME at a temp dir and returns the allowed config dir.
func setupTestHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	configDir := filepath.Join(home, ".config", "assistantd")
	require.NoError(t, os.MkdirAll(configDir, 0700))
	return configDir
}

func writeConfig(t *testing.T, dir, content string, perm os.FileMode) string {
	t.Helper()

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestLoadWithFile_ValidYAML(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `server:
  http_host: 127.0.0.1
  http_port: 8088
  shutdown_timeout: 3s

logging:
  level: debug
  format: console

telemetry:
  enabled: true
  endpoint: localhost:4318
  service_name: assistantd-test
  export_interval: 30s
`, 0600)

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "assistantd-test", cfg.Telemetry.ServiceName)
	assert.Equal(t, 30*time.Second, cfg.Telemetry.ExportInterval.Duration())
	assert.Equal(t, "127.0.0.1:8088", cfg.Server.Addr())
}

func TestLoadWithFile_EnvironmentOverride(t *testing.T) {
	dir := setupTestHome(t)
	path := writeConfig(t, dir, `server:
  http_port: 9090
logging:
  level: info
`, 0600)

	t.Setenv("ASSISTANTD_SERVER_HTTP_PORT", "7777")
	t.Setenv("ASSISTANTD_LOGGING_LEVEL", "warn")
	t.Setenv("ASSISTANTD_TELEMETRY_SERVICE_NAME", "env-service")

	cfg, err := LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7777, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "env-service", cfg.Telemetry.ServiceName)
}

func TestLoadWithFile_MissingFileUsesDefaults(t *testing.T) {
	setupTestHome(t)

	cfg, err := LoadWithFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithFile_Rejections(t *testing.T) {
	t.Run("path outside allowed directories", func(t *testing.T) {
		setupTestHome(t)
		outside := filepath.Join(t.TempDir(), "config.yaml")

		_, err := LoadWithFile(outside)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config path validation failed")
	})

	t.Run("world readable file", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("permission model differs on windows")
		}
		dir := setupTestHome(t)
		path := writeConfig(t, dir, "server:\n  http_port: 9090\n", 0644)

		_, err := LoadWithFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insecure config file permissions")
	})

	t.Run("invalid port", func(t *testing.T) {
		dir := setupTestHome(t)
		path := writeConfig(t, dir, "server:\n  http_port: 70000\n", 0600)

		_, err := LoadWithFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		dir := setupTestHome(t)
		path := writeConfig(t, dir, "server: [unterminated\n", 0600)

		_, err := LoadWithFile(path)
		require.Error(t, err)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.http_port", envKey("ASSISTANTD_SERVER_HTTP_PORT"))
	assert.Equal(t, "telemetry.export_interval", envKey("ASSISTANTD_TELEMETRY_EXPORT_INTERVAL"))
	assert.Equal(t, "debug", envKey("ASSISTANTD_DEBUG"))
}
