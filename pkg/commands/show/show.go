package show

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/collector"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/formats"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/templates"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
	"github.com/spf13/afero"
)

// readmeNames are tried in order at the template root
var readmeNames = []string{"README.md", "readme.md", "README.markdown", "README", "README.txt"}

// ShowTemplateOptions defines the options for the ShowTemplate command.
type ShowTemplateOptions struct {
	Store *templates.Store
	// Template is a template name or path.
	Template string
	// Formats decides which file contents are scanned for variables.
	Formats *formats.Table
}

// ShowTemplate describes a template: where it is, the variables it uses,
// how many entries it has and its README.
func ShowTemplate(opts ShowTemplateOptions) (*types.ShowTemplateResult, error) {
	log := logging.GetLogger("commands.show")
	log.Debug().Str("command", "ShowTemplate").Str("template", opts.Template).Msg("Executing command")

	fs := opts.Store.FS
	path, err := opts.Store.Resolve(opts.Template)
	if err != nil {
		return nil, err
	}

	names, err := collector.CollectAll(fs, path, opts.Formats)
	if err != nil {
		return nil, err
	}

	result := &types.ShowTemplateResult{
		Template:  types.TemplateInfo{Name: filepath.Base(path), Path: path},
		Variables: names,
	}

	err = afero.Walk(fs, path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		switch {
		case p == path:
		case info.IsDir():
			result.Dirs++
		default:
			result.Files++
		}
		return nil
	})
	if err != nil {
		return nil, errors.IOFailure(err, "walk", path)
	}

	for _, name := range readmeNames {
		data, err := afero.ReadFile(fs, filepath.Join(path, name))
		if err == nil {
			result.Readme = strings.TrimRight(string(data), "\n") + "\n"
			break
		}
	}

	return result, nil
}
