// Package version carries build identification, stamped at link time with
// -ldflags so a deployed logger can report exactly what it is running.
package version

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
