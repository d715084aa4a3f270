package save

import (
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/templates"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
)

// SaveTemplateOptions defines the options for the SaveTemplate command.
type SaveTemplateOptions struct {
	Store *templates.Store
	// Source is the directory to save.
	Source string
	// Name is the template name in the store.
	Name string
	// Force replaces an existing template of the same name.
	Force bool
}

// SaveTemplate copies a directory into the store verbatim, so the
// placeholders it contains stay in place.
func SaveTemplate(opts SaveTemplateOptions) (*types.SaveTemplateResult, error) {
	log := logging.GetLogger("commands.save")
	log.Debug().Str("command", "SaveTemplate").Str("name", opts.Name).Msg("Executing command")

	return opts.Store.Save(opts.Source, opts.Name, opts.Force)
}
