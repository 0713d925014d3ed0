package version

// Version is the service release, overridable at build time via -ldflags.
var Version = "1.0.0"
