// Package templates manages the template store: a directory holding one
// sub-directory per named template.
package templates

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/filesystem"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/paths"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// Store is a directory of named templates
type Store struct {
	FS  afero.Fs
	Dir string
	// Ignore holds doublestar patterns left out by Save
	Ignore []string
}

// NewStore creates a store rooted at dir
func NewStore(fs afero.Fs, dir string, ignore []string) *Store {
	return &Store{FS: fs, Dir: dir, Ignore: ignore}
}

// ValidateName checks that name can be used as a stored template name
func ValidateName(name string) error {
	switch {
	case name == "":
		return errors.New(errors.ErrInvalidInput, "template name is empty")
	case name == "." || name == "..":
		return errors.Newf(errors.ErrInvalidInput, "invalid template name %q", name)
	case strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrInvalidInput, "template name %q contains a path separator", name)
	case strings.HasPrefix(name, "."):
		return errors.Newf(errors.ErrInvalidInput, "template name %q is hidden", name)
	}
	return nil
}

// Resolve maps an identifier to a template directory. An existing directory
// path wins; otherwise the identifier is looked up by name in the store.
// Identifiers that look like paths are never looked up by name.
func (s *Store) Resolve(identifier string) (string, error) {
	logger := logging.GetLogger("templates")

	if identifier == "" {
		return "", errors.New(errors.ErrInvalidInput, "template is required")
	}

	candidate := paths.ExpandHome(identifier)
	if ok, err := s.isDir(candidate); err != nil {
		return "", err
	} else if ok {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			return "", errors.IOFailure(err, "resolve", candidate)
		}
		logger.Debug().Str("identifier", identifier).Str("path", abs).Msg("Template resolved as path")
		return abs, nil
	}

	if paths.LooksLikePath(identifier) || ValidateName(identifier) != nil {
		return "", errors.TemplateNotFound(identifier)
	}

	stored := filepath.Join(s.Dir, identifier)
	if ok, err := s.isDir(stored); err != nil {
		return "", err
	} else if !ok {
		return "", errors.TemplateNotFound(identifier)
	}

	logger.Debug().Str("identifier", identifier).Str("path", stored).Msg("Template resolved from store")
	return stored, nil
}

// List returns the stored templates sorted by name. The store directory is
// created when missing.
func (s *Store) List() ([]types.TemplateInfo, error) {
	if err := s.FS.MkdirAll(s.Dir, filesystem.DirMode); err != nil {
		return nil, errors.IOFailure(err, "mkdir", s.Dir)
	}

	entries, err := afero.ReadDir(s.FS, s.Dir)
	if err != nil {
		return nil, errors.IOFailure(err, "read", s.Dir)
	}

	templates := []types.TemplateInfo{}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		if ok, _ := s.isDir(path); !ok {
			continue
		}
		templates = append(templates, types.TemplateInfo{Name: entry.Name(), Path: path})
	}

	return templates, nil
}

// Save copies the directory source into the store as name, verbatim.
// An existing template is only replaced when force is set.
func (s *Store) Save(source, name string, force bool) (*types.SaveTemplateResult, error) {
	logger := logging.GetLogger("templates")
	done := logging.LogOperationStart(logger, "save")
	defer done()

	if err := ValidateName(name); err != nil {
		return nil, err
	}

	skip, err := s.ignoreFunc()
	if err != nil {
		return nil, err
	}

	src, err := filepath.Abs(paths.ExpandHome(source))
	if err != nil {
		return nil, errors.IOFailure(err, "resolve", source)
	}
	if ok, err := s.isDir(src); err != nil {
		return nil, err
	} else if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s is not a directory", source).
			WithDetail(errors.DetailPath, source)
	}

	target, err := filepath.Abs(filepath.Join(s.Dir, name))
	if err != nil {
		return nil, errors.IOFailure(err, "resolve", name)
	}
	if within(src, target) || within(target, src) {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"cannot save %s as %s: one contains the other", src, target)
	}

	result := &types.SaveTemplateResult{Name: name, Source: src, Path: target}

	exists, err := filesystem.Exists(s.FS, target)
	if err != nil {
		return nil, errors.IOFailure(err, "stat", target)
	}
	if exists && !force {
		return nil, errors.DestinationExists(target).WithDetail(errors.DetailTemplate, name)
	}

	if err := s.FS.MkdirAll(s.Dir, filesystem.DirMode); err != nil {
		return nil, errors.IOFailure(err, "mkdir", s.Dir)
	}

	// Copy next to the target first; the old template is only touched once
	// the new one is complete. Hidden names never show up in List.
	staging := filepath.Join(s.Dir, "."+name+".saving")
	if err := s.FS.RemoveAll(staging); err != nil {
		return nil, errors.IOFailure(err, "remove", staging)
	}
	copied, err := filesystem.CopyTree(s.FS, src, staging, skip)
	if err != nil {
		_ = s.FS.RemoveAll(staging)
		return nil, errors.IOFailure(err, "save", target)
	}

	if err := s.replace(staging, target, exists); err != nil {
		_ = s.FS.RemoveAll(staging)
		return nil, err
	}
	result.Replaced = exists
	result.FilesCopied = copied

	logger.Info().
		Str("name", name).
		Str("source", src).
		Int("files", copied).
		Bool("replaced", result.Replaced).
		Msg("Template saved")

	return result, nil
}

// replace moves staging to target. An existing target is set aside first
// and restored if the move fails.
func (s *Store) replace(staging, target string, exists bool) error {
	if !exists {
		if err := s.FS.Rename(staging, target); err != nil {
			return errors.IOFailure(err, "rename", target)
		}
		return nil
	}

	previous := filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+".previous")
	if err := s.FS.RemoveAll(previous); err != nil {
		return errors.IOFailure(err, "remove", previous)
	}
	if err := s.FS.Rename(target, previous); err != nil {
		return errors.IOFailure(err, "rename", target)
	}
	if err := s.FS.Rename(staging, target); err != nil {
		_ = s.FS.Rename(previous, target)
		return errors.IOFailure(err, "rename", target)
	}
	if err := s.FS.RemoveAll(previous); err != nil {
		logger := logging.GetLogger("templates")
		logger.Warn().Err(err).Str("path", previous).
			Msg("Failed to remove previous template version")
	}
	return nil
}

// Remove deletes the stored template name and returns its former path
func (s *Store) Remove(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	target := filepath.Join(s.Dir, name)
	if ok, err := s.isDir(target); err != nil {
		return "", err
	} else if !ok {
		return "", errors.TemplateNotFound(name)
	}

	if err := s.FS.RemoveAll(target); err != nil {
		return "", errors.IOFailure(err, "remove", target)
	}

	logger := logging.GetLogger("templates")
	logger.Info().Str("name", name).Msg("Template removed")
	return target, nil
}

func (s *Store) ignoreFunc() (filesystem.SkipFunc, error) {
	for _, pattern := range s.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid ignore pattern %q", pattern)
		}
	}
	if len(s.Ignore) == 0 {
		return nil, nil
	}

	patterns := s.Ignore
	return func(rel string, _ bool) bool {
		for _, pattern := range patterns {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				return true
			}
		}
		return false
	}, nil
}

func (s *Store) isDir(path string) (bool, error) {
	info, err := s.FS.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.IOFailure(err, "stat", path)
	}
	return info.IsDir(), nil
}

// within reports whether path is root or below it
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
