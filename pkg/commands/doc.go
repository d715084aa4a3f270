// Package commands groups the command-layer functions behind the CLI. Each
// sub-package takes an Options struct and returns a result type from
// pkg/types, leaving rendering to pkg/ui.
package commands
