// Package app wires application dependencies for the CLI.
//
// It opens the vaults, the preferences database and the file storage roots
// from Config and builds every cache on top of them exactly once, exposing
// them via the Wire struct for commands to use.
package app
