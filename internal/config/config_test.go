package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "moodscope.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultTimeout, cfg.Timeout.Duration)
	assert.True(t, cfg.AltScreen)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, `
endpoint = "https://sentiment.example.com"
timeout = "12s"
log_level = "debug"
alt_screen = false

[[samples]]
label = "Cheerful"
text = "What a lovely morning"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://sentiment.example.com", cfg.Endpoint)
	assert.Equal(t, 12*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.AltScreen)
	require.Len(t, cfg.Samples, 1)
	assert.Equal(t, "Cheerful", cfg.Samples[0].Label)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `timeout = "soon"`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `endpoint = "http://file.example"`)
	t.Setenv(envEndpoint, "http://env.example:9000")
	t.Setenv(envTimeout, "3s")
	t.Setenv(envLog, "/tmp/moodscope.log")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example:9000", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Timeout.Duration)
	assert.Equal(t, "/tmp/moodscope.log", cfg.LogFile)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MOODSCOPE_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv(envLogLevel, "")
	os.Unsetenv(envLogLevel)

	LoadEnv(filepath.Join(dir, "missing.env"), envFile)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Endpoint = "not a url"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Timeout = Duration{}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"", "info", "DEBUG", "warning", "error"} {
		_, err := ParseLevel(name)
		assert.NoError(t, err, name)
	}
}
