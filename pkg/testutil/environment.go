package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/mkprojectdir/pkg/filesystem"
	"github.com/spf13/afero"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// ConfigDir holds config.toml; exported as MKPROJECTDIR_CONFIG_DIR
	ConfigDir string
	// TemplatesDir is the template store; exported as MKPROJECTDIR_TEMPLATES_DIR
	TemplatesDir string
	// WorkDir is where tests create sources and destinations
	WorkDir string
	// StateDir receives the log file; exported as XDG_STATE_HOME
	StateDir string

	FS   afero.Fs
	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	base := "/virtual"
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
	case EnvIsolated:
		base = t.TempDir()
		env.FS = filesystem.NewOS()
	}

	env.ConfigDir = filepath.Join(base, "config", "mkprojectdir")
	env.TemplatesDir = filepath.Join(env.ConfigDir, "project_templates")
	env.WorkDir = filepath.Join(base, "work")
	env.StateDir = filepath.Join(base, "state")

	for _, dir := range []string{env.ConfigDir, env.WorkDir} {
		if err := env.FS.MkdirAll(dir, filesystem.DirMode); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv("MKPROJECTDIR_CONFIG_DIR", env.ConfigDir)
	t.Setenv("MKPROJECTDIR_TEMPLATES_DIR", env.TemplatesDir)
	if envType == EnvIsolated {
		t.Setenv("XDG_STATE_HOME", env.StateDir)
	}

	return env
}

// Path joins elements onto the work directory
func (env *TestEnvironment) Path(elem ...string) string {
	return filepath.Join(append([]string{env.WorkDir}, elem...)...)
}

// SetupTemplate writes a tree into the template store and returns its path
func (env *TestEnvironment) SetupTemplate(name string, tree FileTree) string {
	env.t.Helper()
	root := filepath.Join(env.TemplatesDir, name)
	WriteTree(env.t, env.FS, root, tree)
	return root
}

// WithFileTree writes a tree under the work directory and returns its path
func (env *TestEnvironment) WithFileTree(name string, tree FileTree) string {
	env.t.Helper()
	root := env.Path(name)
	WriteTree(env.t, env.FS, root, tree)
	return root
}

// WriteConfig writes config.toml into the config directory
func (env *TestEnvironment) WriteConfig(content string) {
	env.t.Helper()
	path := filepath.Join(env.ConfigDir, "config.toml")
	if err := afero.WriteFile(env.FS, path, []byte(content), filesystem.FileMode); err != nil {
		env.t.Fatalf("Failed to write config: %v", err)
	}
}

// FileTree represents a directory structure for testing. Values are either
// file contents (string or []byte) or nested FileTrees.
type FileTree map[string]interface{}

// WriteTree creates root and the tree beneath it
func WriteTree(t *testing.T, fs afero.Fs, root string, tree FileTree) {
	t.Helper()
	if err := fs.MkdirAll(root, filesystem.DirMode); err != nil {
		t.Fatalf("Failed to create directory %s: %v", root, err)
	}
	createFileTree(t, fs, root, tree)
}

// createFileTree recursively creates a file tree
func createFileTree(t *testing.T, fs afero.Fs, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := afero.WriteFile(fs, fullPath, []byte(v), filesystem.FileMode); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case []byte:
			if err := afero.WriteFile(fs, fullPath, v, filesystem.FileMode); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := fs.MkdirAll(fullPath, filesystem.DirMode); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			createFileTree(t, fs, fullPath, v)
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// ReadTree flattens the tree under root into slash-separated relative paths.
// Directories map to "/" suffixed keys with empty values.
func ReadTree(t *testing.T, fs afero.Fs, root string) map[string]string {
	t.Helper()

	out := make(map[string]string)
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to read tree %s: %v", root, err)
	}
	return out
}

// Paths returns the sorted keys of a ReadTree result
func Paths(tree map[string]string) []string {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// JoinLines is a small helper for multi-line file contents
func JoinLines(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
