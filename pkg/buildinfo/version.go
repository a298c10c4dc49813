// Package buildinfo carries the version stamped into the psg binary.
//
// The variables are set with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/puzzlesheet/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/puzzlesheet/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/psg
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the release tag.
	Version = "dev"

	// Commit is the git revision.
	Commit = "none"

	// Date is the build time, RFC 3339.
	Date = "unknown"
)

// Info is the build information in a printable shape.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go" yaml:"go"`
}

// Get returns the stamped values. Unstamped dev builds fall back to the
// VCS data the toolchain embeds.
func Get() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

// String returns the formatted build information.
func String() string {
	i := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", i.Version, i.Commit, i.Date, i.GoVersion)
}

// Template returns the version template string for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Date)
}
