package misc

import (
	"runtime/debug"
	"sync"
)

// Build time variables, set by the linker.
var (
	appName = "tsugumi"
	version = "development"
)

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return bi
})

// GetAppName returns the name of the program for logs, temporary files and reports.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set during the build or module version when
// installed with "go install".
func GetVersion() string {
	if version != "development" {
		return version
	}
	if bi := buildInfo(); bi != nil && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return version
}

// GetGitHash returns vcs revision recorded in the binary.
func GetGitHash() string {
	bi := buildInfo()
	if bi == nil {
		return "unknown"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
