package version

import (
	"fmt"
	"runtime"
)

// Build metadata injected by goreleaser or makefile
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const name = "voicejournal"

// GetVersion returns a formatted version string
func GetVersion() string {
	return Version
}

// GetVersionInfo returns detailed version information
func GetVersionInfo() string {
	if Version == "dev" {
		return fmt.Sprintf("%s dev (%s, %s/%s)", name, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		name, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}

// UserAgent identifies the client to remote services.
func UserAgent() string {
	return name + "/" + Version
}
