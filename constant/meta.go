// Package constant defines immutable application-level identifiers and operator-facing texts.
package constant

const (
	// Grundrisse is the canonical application identifier used for filesystem paths and CLI branding.
	Grundrisse = "grundrisse"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is sent with every request to the source registry backend.
	UserAgent = Grundrisse + "-console/" + Version
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
