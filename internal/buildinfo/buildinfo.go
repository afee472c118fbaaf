// Package buildinfo exposes the version stamped into release binaries.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

// Overridden at release time via -ldflags -X; the defaults keep plain
// go build and go test output sensible.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// DisplayVersion normalizes Version for the version command: bare numbers
// gain a "v" prefix, and an unstamped binary falls back to the module
// version Go embeds for go-install builds.
func DisplayVersion() string {
	v := strings.TrimSpace(Version)
	if v == "" || v == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			if mv := strings.TrimSpace(bi.Main.Version); mv != "" && mv != "(devel)" {
				v = mv
			}
		}
	}
	switch {
	case v == "" || v == "dev" || v == "(devel)":
		return "dev"
	case v[0] >= '0' && v[0] <= '9':
		return "v" + v
	default:
		return v
	}
}
