// Package filesystem provides the filesystems mkprojectdir runs against and
// small tree helpers shared by the engine and the template store.
//
// All code takes an afero.Fs so production runs on the OS filesystem and
// tests run on an in-memory one without touching disk.
package filesystem
