// Package version exposes the CLI version string and release-channel helpers.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the current release. Overridden at build time via
// -ldflags "-X github.com/xoseperez/platformio/internal/version.Version=...".
var Version = "0.2.0-dev.1" //nolint:gochecknoglobals // Set once at build time

// IsDevRelease reports whether the running binary is a development build.
// Development builds carry a "dev" prerelease tag in their semver string;
// they pretty-print the state file so it stays hand-inspectable.
func IsDevRelease() bool {
	v, err := semver.NewVersion(Version)
	if err != nil {
		// Unparseable versions come from ad-hoc local builds; treat as dev.
		return true
	}
	return strings.Contains(v.Prerelease(), "dev")
}
