// Package types defines the data structures shared between the engine, the
// command layer and the CLI: planned filesystem operations and the results
// returned by each command.
package types
