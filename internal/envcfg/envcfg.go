// Package envcfg parses the PLATFORMIO_* process environment into a typed
// struct. Per-setting overrides (PLATFORMIO_SETTING_*) are dynamic and live
// in the settings package instead.
package envcfg

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the process-level environment knobs recognized by the core.
type Env struct {
	// HomeDir overrides the per-user home directory (~/.platformio).
	HomeDir string `env:"PLATFORMIO_HOME_DIR"`

	// CacheDir overrides the download/API cache root (<home>/.cache).
	CacheDir string `env:"PLATFORMIO_CACHE_DIR"`

	// DisableProgressbar suppresses progress indicators when set to "true".
	DisableProgressbar string `env:"PLATFORMIO_DISABLE_PROGRESSBAR"`

	// C9UID is a cloud-IDE user id used to seed the client identifier.
	C9UID string `env:"C9_UID"`

	// CI is set by continuous-integration environments.
	CI bool `env:"CI"`
}

// Load parses the current process environment.
func Load() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parsing environment: %w", err)
	}
	return e, nil
}

// ProgressbarDisabled reports whether the env explicitly disables progress
// indicators. Only the literal "true" counts, matching the documented knob.
func (e Env) ProgressbarDisabled() bool {
	return e.DisableProgressbar == "true"
}
