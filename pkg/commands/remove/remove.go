package remove

import (
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/templates"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
)

// RemoveTemplateOptions defines the options for the RemoveTemplate command.
type RemoveTemplateOptions struct {
	Store *templates.Store
	Name  string
}

// RemoveTemplate deletes a stored template.
func RemoveTemplate(opts RemoveTemplateOptions) (*types.RemoveTemplateResult, error) {
	log := logging.GetLogger("commands.remove")
	log.Debug().Str("command", "RemoveTemplate").Str("name", opts.Name).Msg("Executing command")

	path, err := opts.Store.Remove(opts.Name)
	if err != nil {
		return nil, err
	}
	return &types.RemoveTemplateResult{Name: opts.Name, Path: path}, nil
}
