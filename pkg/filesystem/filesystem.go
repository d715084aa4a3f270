package filesystem

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Default permissions for created entries
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

// NewOS creates a filesystem backed by the operating system
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory creates an in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Exists reports whether path exists. Errors other than "not exist" are
// returned.
func Exists(fs afero.Fs, path string) (bool, error) {
	return afero.Exists(fs, path)
}

// IsEmptyDir reports whether path is a directory with no entries
func IsEmptyDir(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, nil
	}
	entries, err := afero.ReadDir(fs, path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}

// Resolve returns the info to act on for a walked entry. Symlinks are
// followed; the second value is false when the entry should be skipped
// (dangling links and links to directories).
func Resolve(fs afero.Fs, path string, info os.FileInfo) (os.FileInfo, bool) {
	if info.Mode()&os.ModeSymlink == 0 {
		return info, true
	}
	target, err := fs.Stat(path)
	if err != nil || target.IsDir() {
		return nil, false
	}
	return target, true
}

// WriteFileExclusive writes data to a new file. It fails with an error
// matching os.ErrExist when the file is already present.
func WriteFileExclusive(fs afero.Fs, path string, data []byte, mode os.FileMode) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// CopyFile streams src into a new file at dst. Like WriteFileExclusive it
// never replaces an existing file.
func CopyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// SkipFunc decides whether a path, relative to the tree root and using
// forward slashes, is left out of a copy. Returning true for a directory
// skips everything beneath it.
type SkipFunc func(rel string, isDir bool) bool

// CopyTree copies the directory src to dst verbatim. dst must not exist.
// It returns the number of files copied.
func CopyTree(fs afero.Fs, src, dst string, skip SkipFunc) (int, error) {
	if exists, err := Exists(fs, dst); err != nil {
		return 0, err
	} else if exists {
		return 0, fmt.Errorf("%s: %w", dst, os.ErrExist)
	}

	copied := 0
	err := afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if rel == "." {
			return fs.MkdirAll(target, DirMode)
		}
		if skip != nil && skip(filepath.ToSlash(rel), info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return fs.Mkdir(target, DirMode)
		}

		resolved, ok := Resolve(fs, path, info)
		if !ok {
			return nil
		}
		if err := CopyFile(fs, path, target, resolved.Mode().Perm()); err != nil {
			return err
		}
		copied++
		return nil
	})

	return copied, err
}
