// Package version holds the application version string.
package version

// Version is the application version, overridden at build time via
// -ldflags "-X .../internal/version.Version=x.y.z".
var Version = "1.2.0"
