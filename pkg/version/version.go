// Package version holds the build version, overridden at release time
// via -ldflags "-X github.com/xvander/hostpulse/pkg/version.Version=...".
package version

// Version is the current hostpulse version.
var Version = "dev"
