package version

import (
	"fmt"
	"runtime/debug"
)

// Package is the name reported in Info.
const Package = "zipshell"

// Build metadata injected with -ldflags -X. The defaults mark a development
// build, in which case the values recorded by the Go toolchain are used.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the complete version record for a zipshell binary. The JSON tags
// allow it to be embedded in machine-readable output.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
}

// GetVersion returns the release version. An ldflags value wins; otherwise the
// module version from the build info is used, which is set for binaries built
// with "go install module@version". Local builds report "development".
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// GetCommit returns the VCS revision the binary was built from, or "unknown"
// when neither ldflags nor the build info carries one.
func GetCommit() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	return buildSetting("vcs.revision")
}

// GetBuildDate returns the build timestamp. Without an ldflags value this is
// the commit time recorded by the toolchain (vcs.time), not the time of the
// build itself.
func GetBuildDate() string {
	if Date != "unknown" && Date != "" {
		return Date
	}
	return buildSetting("vcs.time")
}

// buildSetting looks up a key in the build info settings.
func buildSetting(key string) string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == key {
				return setting.Value
			}
		}
	}
	return "unknown"
}

// GetInfo collects every version field into one Info.
func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: Package,
	}
}

// GetFullVersion returns the version as shown by --version: the bare version,
// followed by the short commit and build date when they are known.
func GetFullVersion() string {
	return formatInfo(GetInfo())
}

// formatInfo renders info as "v1.2.3 (abc1234, built DATE)", dropping the
// parts that are unknown. Commits shorter than eight characters are not shown.
func formatInfo(info Info) string {
	if info.Commit != "unknown" && len(info.Commit) > 7 {
		shortCommit := info.Commit[:7]
		if info.Date != "unknown" {
			return fmt.Sprintf("%s (%s, built %s)", info.Version, shortCommit, info.Date)
		}
		return fmt.Sprintf("%s (%s)", info.Version, shortCommit)
	}
	return info.Version
}
