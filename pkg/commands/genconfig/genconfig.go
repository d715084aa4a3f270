package genconfig

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/mkprojectdir/pkg/config"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/filesystem"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
	"github.com/spf13/afero"
)

// GenConfigOptions holds options for the 'config init' command
type GenConfigOptions struct {
	// ConfigFile is where the file is written
	ConfigFile string
	// Write writes the file instead of returning its content
	Write bool
	// Force replaces an existing file
	Force bool
	// FileSystem is the filesystem to use (optional, defaults to OS filesystem)
	FileSystem afero.Fs
}

// GenConfig outputs or writes a starting config.toml with every value
// commented out
func GenConfig(opts GenConfigOptions) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	dir := filepath.Dir(opts.ConfigFile)
	if err := fs.MkdirAll(dir, filesystem.DirMode); err != nil {
		return result, errors.IOFailure(err, "mkdir", dir)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if opts.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := fs.OpenFile(opts.ConfigFile, flags, filesystem.FileMode)
	if err != nil {
		if os.IsExist(err) {
			return result, errors.DestinationExists(opts.ConfigFile)
		}
		return result, errors.IOFailure(err, "write", opts.ConfigFile)
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return result, errors.IOFailure(err, "write", opts.ConfigFile)
	}
	if err := f.Close(); err != nil {
		return result, errors.IOFailure(err, "write", opts.ConfigFile)
	}

	logger.Info().Str("path", opts.ConfigFile).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, opts.ConfigFile)
	return result, nil
}

// ShowConfig renders the effective configuration as TOML
func ShowConfig(cfg *config.Config) (*types.GenConfigResult, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return &types.GenConfigResult{ConfigContent: string(data), FilesWritten: []string{}}, nil
}
