// File: version.go
// Title: Version Information
// Description: Version of the vc2pseudo tool and of its components. Commit
//              and build date are injected at link time with
//              -ldflags "-X .../version.Commit=... -X .../version.BuildDate=...".
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial version information

package version

import (
	"fmt"
	"runtime"
)

// Version constants for the tool and its components
const (
	// Tool version
	Tool = "0.1.0"

	// Component versions
	Grammar  = "1.0.0"
	Resolver = "1.0.0"
)

// Set by the linker
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info describes a build
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Grammar   string `json:"grammar" yaml:"grammar"`
	Resolver  string `json:"resolver" yaml:"resolver"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Version:   Tool,
		Grammar:   Grammar,
		Resolver:  Resolver,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "grammar":
		return Grammar
	case "resolver":
		return Resolver
	default:
		return Tool
	}
}

// String renders a one-line summary
func (i Info) String() string {
	return fmt.Sprintf("vc2pseudo %s (grammar %s, resolver %s) commit %s built %s %s %s",
		i.Version, i.Grammar, i.Resolver, i.Commit, i.BuildDate, i.GoVersion, i.Platform)
}
