package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"cubetimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "INFLUX_URL": "http://localhost:8086",
  "INFLUX_TOKEN": "abc==",
  "INFLUX_ORG": "home",
  "INFLUX_BUCKET": "rubiks"
}`)

	config, err := LoadConfig(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, model.InfluxConfig{
		URL:    "http://localhost:8086",
		Token:  "abc==",
		Org:    "home",
		Bucket: "rubiks",
	}, config)
}

func TestLoadConfigYAMLWithTimeout(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
INFLUX_URL: https://influx.example.com
INFLUX_TOKEN: token
INFLUX_ORG: org
INFLUX_BUCKET: bucket
INFLUX_TIMEOUT: 3
`)

	config, err := LoadConfig(path, Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.Equal(t, "https://influx.example.com", config.URL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"), Overrides{})
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadConfigMissingFields(t *testing.T) {
	path := writeConfig(t, "config.json", `{"INFLUX_URL": "http://localhost:8086", "INFLUX_ORG": "home"}`)

	_, err := LoadConfig(path, Overrides{})
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "INFLUX_TOKEN")
	assert.Contains(t, err.Error(), "INFLUX_BUCKET")
	assert.NotContains(t, err.Error(), "INFLUX_URL")
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "config.json", `{"INFLUX_URL": [`)
	_, err := LoadConfig(path, Overrides{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingField)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, "config.json", `{"INFLUX_URL": "http://file:8086", "INFLUX_ORG": "home"}`)

	config, err := LoadConfig(path, Overrides{
		URL:    "http://env:8086",
		Token:  "from-env",
		Bucket: "env-bucket",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://env:8086", config.URL)
	assert.Equal(t, "from-env", config.Token)
	assert.Equal(t, "home", config.Org)
	assert.Equal(t, "env-bucket", config.Bucket)
}

func TestResolveConfigPathExplicit(t *testing.T) {
	path, err := ResolveConfigPath("CubeTimer", "/etc/cubetimer.json")
	require.NoError(t, err)
	assert.Equal(t, "/etc/cubetimer.json", path)
}

func TestResolveConfigPathUserDir(t *testing.T) {
	work := t.TempDir()
	home := t.TempDir()
	prevDir, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(work))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	t.Setenv("AppData", home)

	_, err := ResolveConfigPath("CubeTimer", "")
	require.ErrorIs(t, err, ErrConfigNotFound)

	configDir, err := os.UserConfigDir()
	require.NoError(t, err)
	candidate := filepath.Join(configDir, "CubeTimer", "config.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(candidate), 0o755))
	require.NoError(t, os.WriteFile(candidate, []byte("{}"), 0o600))

	path, err := ResolveConfigPath("CubeTimer", "")
	require.NoError(t, err)
	assert.Equal(t, candidate, path)

	require.NoError(t, os.WriteFile(filepath.Join(work, "config.json"), []byte("{}"), 0o600))
	path, err = ResolveConfigPath("CubeTimer", "")
	require.NoError(t, err)
	assert.Equal(t, "config.json", path)
}
