package list

import (
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/templates"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
)

// ListTemplatesOptions defines the options for the ListTemplates command.
type ListTemplatesOptions struct {
	// Store is the template store to list.
	Store *templates.Store
}

// ListTemplates returns the names of all stored templates.
func ListTemplates(opts ListTemplatesOptions) (*types.ListTemplatesResult, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("command", "ListTemplates").Msg("Executing command")

	found, err := opts.Store.List()
	if err != nil {
		return nil, err
	}

	result := &types.ListTemplatesResult{
		TemplatesDir: opts.Store.Dir,
		Templates:    found,
	}

	log.Info().Str("command", "ListTemplates").Int("templateCount", len(found)).Msg("Command finished")
	return result, nil
}
