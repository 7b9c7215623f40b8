package internal

// Version is the application version, overridable at build time via
// -ldflags "-X codeberg.org/snonux/wortkarten/internal.Version=..."
var Version = "0.3.0"
