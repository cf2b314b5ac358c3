// Package version exposes build metadata stamped into the binary.
package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags "-X github.com/solterra/monokit/version.Version=...".
var (
	// Version is the semantic version of the monokit binary (if tagged)
	Version = "dev"

	// CommitHash is the git commit the binary was built from
	CommitHash = "unknown"

	// BuildTime is when the binary was built
	BuildTime = "unknown"
)

// Info bundles build metadata for the version command and structured logs.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders a one-line human-readable description.
func (i Info) String() string {
	return fmt.Sprintf("monokit %s (commit %s, built %s, %s %s)",
		i.Version, i.Short(), i.BuildTime, i.GoVersion, i.Platform)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
