package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for mkprojectdir
	EnvConfigDir = "MKPROJECTDIR_CONFIG_DIR"

	// EnvTemplatesDir overrides the template store location
	EnvTemplatesDir = "MKPROJECTDIR_TEMPLATES_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the XDG directories
const (
	// AppDirName is the directory name used under each XDG home
	AppDirName = "mkprojectdir"

	// TemplatesDirName is the store directory inside the config directory
	TemplatesDirName = "project_templates"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "mkprojectdir.log"
)

// Paths provides centralized path management for mkprojectdir
type Paths interface {
	ConfigDir() string
	ConfigFilePath() string
	TemplatesDir() string
	TemplatePath(name string) string
	StateDir() string
	LogFilePath() string
}

type paths struct {
	configDir    string
	templatesDir string
	stateDir     string
}

// New creates a Paths instance. templatesDir is the configured store
// location; it is used unless MKPROJECTDIR_TEMPLATES_DIR is set, and an
// empty value selects the default inside the config directory.
func New(templatesDir string) (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	switch {
	case os.Getenv(EnvTemplatesDir) != "":
		p.templatesDir = ExpandHome(os.Getenv(EnvTemplatesDir))
	case templatesDir != "":
		p.templatesDir = ExpandHome(templatesDir)
	default:
		p.templatesDir = filepath.Join(p.configDir, TemplatesDirName)
	}

	// adrg/xdg reads the environment once at startup
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, AppDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	for _, dir := range []*string{&p.configDir, &p.templatesDir, &p.stateDir} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// ConfigDir returns the config directory
func (p *paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the path of config.toml
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// TemplatesDir returns the template store
func (p *paths) TemplatesDir() string {
	return p.templatesDir
}

// TemplatePath returns where a stored template with the given name lives
func (p *paths) TemplatePath(name string) string {
	return filepath.Join(p.templatesDir, name)
}

// StateDir returns the state directory
func (p *paths) StateDir() string {
	return p.stateDir
}

// LogFilePath returns the path of the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// ~user is left alone
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// LooksLikePath reports whether an identifier is meant as a filesystem path
// rather than a name: it is absolute or starts with ./, ../ or ~/
func LooksLikePath(identifier string) bool {
	if filepath.IsAbs(identifier) || identifier == "." || identifier == ".." || identifier == "~" {
		return true
	}
	for _, prefix := range []string{"./", "../", "~/"} {
		if strings.HasPrefix(identifier, prefix) {
			return true
		}
	}
	if filepath.Separator != '/' {
		for _, prefix := range []string{`.\`, `..\`, `~\`} {
			if strings.HasPrefix(identifier, prefix) {
				return true
			}
		}
	}
	return false
}
