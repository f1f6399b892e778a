package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xoseperez/platformio/internal/cache"
	"github.com/xoseperez/platformio/internal/cli"
)

// runCommand executes the root command with args against an isolated home
// directory and returns the combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv("PLATFORMIO_HOME_DIR", t.TempDir())
	t.Setenv("CI", "false")
}

func TestSettingsSetAndGet(t *testing.T) {
	setupCLITest(t)

	out, err := runCommand(t, "settings", "set", "enable_telemetry", "no")
	require.NoError(t, err)
	assert.Contains(t, out, "The new value for the setting is No")

	out, err = runCommand(t, "settings", "get", "enable_telemetry")
	require.NoError(t, err)
	assert.Contains(t, out, "No")

	out, err = runCommand(t, "settings", "get", "check_platformio_interval")
	require.NoError(t, err)
	assert.Contains(t, out, "3")
}

func TestSettingsSetInvalid(t *testing.T) {
	setupCLITest(t)

	_, err := runCommand(t, "settings", "set", "bogus_name", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus_name")

	_, err = runCommand(t, "settings", "set", "check_platformio_interval", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc")
	assert.Contains(t, err.Error(), "check_platformio_interval")
}

func TestSettingsReset(t *testing.T) {
	setupCLITest(t)

	_, err := runCommand(t, "settings", "set", "force_verbose", "yes")
	require.NoError(t, err)

	out, err := runCommand(t, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "reseted")

	out, err = runCommand(t, "settings", "get", "force_verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "No")
}

func TestSettingsList(t *testing.T) {
	setupCLITest(t)

	t.Run("Table", func(t *testing.T) {
		out, err := runCommand(t, "settings", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "enable_telemetry")
		assert.Contains(t, out, "check_platformio_interval")
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := runCommand(t, "settings", "list", "--output", "json")
		require.NoError(t, err)

		var values map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &values))
		assert.Equal(t, true, values["enable_telemetry"])
		assert.Equal(t, float64(3), values["check_platformio_interval"])
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := runCommand(t, "settings", "list", "--output", "yaml")
		require.NoError(t, err)

		var values map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &values))
		assert.Equal(t, true, values["enable_telemetry"])
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := runCommand(t, "settings", "list", "--output", "xml")
		assert.Error(t, err)
	})
}

func TestCacheClean(t *testing.T) {
	setupCLITest(t)
	cacheDir := filepath.Join(t.TempDir(), "cache")
	t.Setenv("PLATFORMIO_CACHE_DIR", cacheDir)

	c, err := cache.Open(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, c.Set(cache.KeyFromArgs("seed", "entry"), "data", "1h"))

	out, err := runCommand(t, "cache", "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "cleaned")

	_, statErr := os.Stat(cacheDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSystemInfo(t *testing.T) {
	setupCLITest(t)

	out, err := runCommand(t, "system", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Home dir")
	assert.Contains(t, out, "State file")
	assert.Contains(t, out, "Client ID")
}
