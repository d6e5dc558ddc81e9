// Package config provides configuration management for the tidy file organizer.
package config

// Default configuration values for tidy.
const (
	// DefaultMode is the organizing mode used when none is specified.
	DefaultMode = "type"

	// DefaultAction is the transfer action used when none is specified.
	DefaultAction = "move"

	// DefaultConflictPolicy decides what happens on destination collisions.
	DefaultConflictPolicy = "rename"

	// DefaultDestName is the destination folder created under the source
	// when no explicit destination is given.
	DefaultDestName = "Organized"

	// DefaultRecursive controls whether subdirectories are enumerated.
	DefaultRecursive = false
)
