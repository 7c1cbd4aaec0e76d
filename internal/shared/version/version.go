// Package version carries build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X medrecords/internal/shared/version.Version=1.2.0"
package version

import (
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is the build information reported by the health endpoint and the
// version command.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// Get returns the injected build info. A missing commit falls back to the
// VCS revision the toolchain stamped into the binary.
func Get() Info {
	info := Info{
		Version:   Normalize(Version),
		Commit:    Commit,
		BuildTime: BuildTime,
	}
	if info.Commit == "" {
		info.Commit = vcsRevision()
	}
	return info
}

// Normalize ensures a release version carries the "v" prefix.
// "1.2.3" -> "v1.2.3"; "dev" stays "dev".
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || version == "dev" {
		return "dev"
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}
