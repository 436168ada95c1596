// Package version reports the tsdiagd build version.
//
// The VersionOverride variable may be used to set the version at link time,
// e.g. `go build -ldflags "-X .../internal/version.VersionOverride=v1.2.3"`.
package version

import "runtime/debug"

var VersionOverride = ""

// Version returns the tsdiagd version.
//
// By default, this is read from runtime/debug.ReadBuildInfo, but may be
// overridden by the [VersionOverride] variable.
func Version() string {
	if VersionOverride != "" {
		return VersionOverride
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			return info.Main.Version
		}
	}
	return "(unknown)"
}
