// Package version carries build-time version information, injected via
// -ldflags "-X github.com/careerdex/careerdex/internal/version.Version=...".
package version

var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit hash of the build.
	Commit = "unknown"
)
