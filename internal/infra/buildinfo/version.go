package buildinfo

import (
	"runtime/debug"
	"sync"
)

// Build-time variables (set via ldflags).
var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = "unknown"
	Repository = "https://github.com/yndnr/reqlog-go"
)

// Info contains build information.
type Info struct {
	Version    string `json:"version" yaml:"version"`
	Commit     string `json:"commit" yaml:"commit"`
	BuildTime  string `json:"build_time" yaml:"build_time"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
	Repository string `json:"repository" yaml:"repository"`
}

var (
	runtimeOnce sync.Once
	runtimeInfo *debug.BuildInfo
)

// Get returns the build information.
func Get() Info {
	info := Info{
		Version:    Version,
		Commit:     Commit,
		BuildTime:  BuildTime,
		GoVersion:  "unknown",
		Repository: Repository,
	}

	runtimeOnce.Do(func() {
		runtimeInfo, _ = debug.ReadBuildInfo()
	})
	if runtimeInfo == nil {
		return info
	}

	info.GoVersion = runtimeInfo.GoVersion
	if info.Commit == "unknown" {
		for _, s := range runtimeInfo.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				info.Commit = s.Value
			}
		}
	}
	return info
}

// String returns a formatted version string.
func String() string {
	i := Get()
	return i.Version + " (" + i.Commit + ") built at " + i.BuildTime
}
