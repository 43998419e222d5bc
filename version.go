// Package talon holds shared metadata for the Talon CLI.
package talon

// Version is the current Talon release.
const Version = "0.3.0"
