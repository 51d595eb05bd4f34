// Package version reports build information for the javalint binary.
package version

import (
	"runtime"
	"runtime/debug"
	"slices"
)

// version is set at link time with -ldflags "-X .../version.version=...".
var version = "dev"

const grammarModule = "github.com/smacker/go-tree-sitter"

// Version returns the version string with the linked Java grammar version.
func Version() string {
	if g := readBuildInfo().grammar; g != "" {
		return version + " (tree-sitter " + g + ")"
	}
	return version
}

// RawVersion returns the semantic version string without any suffix.
func RawVersion() string {
	return version
}

type buildInfo struct {
	grammar string
	commit  string
}

func readBuildInfo() buildInfo {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return buildInfo{}
	}
	var bi buildInfo
	if idx := slices.IndexFunc(info.Deps, func(dep *debug.Module) bool {
		return dep.Path == grammarModule
	}); idx >= 0 {
		bi.grammar = info.Deps[idx].Version
	}
	if idx := slices.IndexFunc(info.Settings, func(s debug.BuildSetting) bool {
		return s.Key == "vcs.revision"
	}); idx >= 0 {
		bi.commit = info.Settings[idx].Value
		if len(bi.commit) > 12 {
			bi.commit = bi.commit[:12]
		}
	}
	return bi
}

// Info holds structured version information for machine-readable output.
type Info struct {
	Version        string   `json:"version"`
	GrammarVersion string   `json:"grammarVersion,omitempty"`
	Platform       Platform `json:"platform"`
	GoVersion      string   `json:"goVersion"`
	GitCommit      string   `json:"gitCommit,omitempty"`
}

// Platform describes the OS and architecture.
type Platform struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// GetInfo returns structured version information.
func GetInfo() Info {
	bi := readBuildInfo()
	return Info{
		Version:        RawVersion(),
		GrammarVersion: bi.grammar,
		Platform:       Platform{OS: runtime.GOOS, Arch: runtime.GOARCH},
		GoVersion:      runtime.Version(),
		GitCommit:      bi.commit,
	}
}
