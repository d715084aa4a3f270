// Package testutil provides utilities for testing mkprojectdir components.
//
// Key components:
//   - TestEnvironment: config, templates and work directories with the
//     environment variables pointing at them, cleaned up with the test
//   - FileTree: declarative directory trees written to any afero.Fs
//   - ReadTree: flattens a written tree back to a map for assertions
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated when code under test reaches
//     the OS filesystem directly (the cobra commands do)
//   - All test data should be defined inline, not in external files
package testutil
