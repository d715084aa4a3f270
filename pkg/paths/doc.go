// Package paths provides centralized path handling for mkprojectdir.
//
// It follows the XDG Base Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/mkprojectdir (config.toml)
//   - Templates: $XDG_CONFIG_HOME/mkprojectdir/project_templates
//   - State: $XDG_STATE_HOME/mkprojectdir (log file)
//
// # Environment Variables
//
//   - MKPROJECTDIR_CONFIG_DIR: override the config directory
//   - MKPROJECTDIR_TEMPLATES_DIR: override the template store, taking
//     precedence over the templates_dir config key
//
// # Usage
//
//	p, err := paths.New("")
//	if err != nil {
//	    return err
//	}
//	store := p.TemplatesDir()
package paths
