// Package collector discovers the variable names a template needs.
//
// Names are reported in the order they are first met while walking the
// template depth-first, lexically within each directory, so prompts come out
// in the same order on every run.
package collector

import (
	"os"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/filesystem"
	"github.com/arthur-debert/mkprojectdir/pkg/formats"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/placeholders"
	"github.com/spf13/afero"
)

// Collect returns the variable names used in the directory and file names
// under templateRoot. The name of templateRoot itself is not scanned.
func Collect(fs afero.Fs, templateRoot string) ([]string, error) {
	return collect(fs, templateRoot, nil)
}

// CollectAll is Collect plus the variables used inside the contents of
// files the table recognizes. For each file its name variables come before
// its content variables.
func CollectAll(fs afero.Fs, templateRoot string, table *formats.Table) ([]string, error) {
	if table == nil {
		table = formats.DefaultTable()
	}
	return collect(fs, templateRoot, table)
}

func collect(fs afero.Fs, templateRoot string, table *formats.Table) ([]string, error) {
	logger := logging.GetLogger("collector")

	info, err := fs.Stat(templateRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.TemplateNotFound(templateRoot)
		}
		return nil, errors.IOFailure(err, "stat", templateRoot)
	}
	if !info.IsDir() {
		return nil, errors.TemplateNotFound(templateRoot).
			WithDetail(errors.DetailPath, templateRoot)
	}

	set := newOrderedSet()
	err = afero.Walk(fs, templateRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.IOFailure(err, "walk", path)
		}
		if path == templateRoot {
			return nil
		}

		set.add(placeholders.Names(info.Name(), placeholders.Path)...)

		if table == nil || info.IsDir() {
			return nil
		}
		resolved, ok := filesystem.Resolve(fs, path, info)
		if !ok {
			return nil
		}
		delims, ok := table.Classify(info.Name()).Delimiters()
		if !ok || !resolved.Mode().IsRegular() {
			return nil
		}
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return errors.IOFailure(err, "read", path)
		}
		set.add(placeholders.Names(string(content), delims)...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("template", templateRoot).
		Bool("contents", table != nil).
		Strs("variables", set.names).
		Msg("collected variables")

	return set.names, nil
}

type orderedSet struct {
	names []string
	seen  map[string]bool
}

func newOrderedSet() *orderedSet {
	return &orderedSet{names: []string{}, seen: make(map[string]bool)}
}

func (s *orderedSet) add(names ...string) {
	for _, n := range names {
		if !s.seen[n] {
			s.seen[n] = true
			s.names = append(s.names, n)
		}
	}
}
