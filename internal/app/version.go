package app

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version, Commit and BuildTime are stamped at link time:
//
//	go build -ldflags "-X github.com/heartmarshall/research-ledger/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// ReadBuildInfo returns the stamped build values. When the binary was built
// without ldflags, the commit falls back to the VCS revision the Go
// toolchain embeds.
func ReadBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
	if info.Commit != "unknown" {
		return info
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				info.Commit = s.Value
			}
		}
	}
	return info
}

// BuildVersion is the one-line form used in startup logs and /health.
func BuildVersion() string {
	info := ReadBuildInfo()
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.BuildTime)
}
