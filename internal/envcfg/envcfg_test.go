package envcfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("PLATFORMIO_HOME_DIR", "/custom/home")
	t.Setenv("PLATFORMIO_CACHE_DIR", "/custom/cache")
	t.Setenv("PLATFORMIO_DISABLE_PROGRESSBAR", "true")
	t.Setenv("C9_UID", "user-7")
	t.Setenv("CI", "true")

	e, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/custom/home", e.HomeDir)
	assert.Equal(t, "/custom/cache", e.CacheDir)
	assert.Equal(t, "user-7", e.C9UID)
	assert.True(t, e.CI)
	assert.True(t, e.ProgressbarDisabled())
}

func TestProgressbarDisabledLiteralOnly(t *testing.T) {
	for _, value := range []string{"", "1", "yes", "TRUE"} {
		e := Env{DisableProgressbar: value}
		assert.False(t, e.ProgressbarDisabled(), "value %q should not disable", value)
	}
	assert.True(t, Env{DisableProgressbar: "true"}.ProgressbarDisabled())
}
