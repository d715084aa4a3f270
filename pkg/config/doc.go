// Package config handles configuration management for mkprojectdir.
// Configuration is layered with koanf: embedded defaults, the user's
// config.toml, MKPROJECTDIR_* environment variables and finally explicit
// overrides from command-line flags.
package config
