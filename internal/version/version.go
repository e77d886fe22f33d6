// Package version reports which silcolour release is running and the
// toolchain it was built with. Release builds set the variables below with
// -ldflags "-X github.com/jmylchreest/silcolour/internal/version.Version=...".
package version

import (
	"fmt"
	"runtime"
)

// Set by the release build; left empty by go build and go install.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Build describes the running binary.
type Build struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// Current returns the Build of the running binary.
func Current() Build {
	return Build{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

// Stamped reports whether the release build recorded a commit and date.
func (b Build) Stamped() bool {
	return b.Commit != "" && b.Date != ""
}

func (b Build) String() string {
	platform := b.OS + "/" + b.Arch
	if !b.Stamped() {
		return fmt.Sprintf("silcolour %s (%s, %s)", b.Version, b.Go, platform)
	}
	commit := b.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("silcolour %s (commit %s, built %s, %s, %s)", b.Version, commit, b.Date, b.Go, platform)
}

// String is shorthand for Current().String().
func String() string {
	return Current().String()
}

// Short returns the bare version, as shown by --version.
func Short() string {
	return Version
}
