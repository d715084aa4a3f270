package instantiate

import (
	"context"
	"time"

	"github.com/arthur-debert/mkprojectdir/pkg/collector"
	"github.com/arthur-debert/mkprojectdir/pkg/engine"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/filesystem"
	"github.com/arthur-debert/mkprojectdir/pkg/formats"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/resolver"
	"github.com/arthur-debert/mkprojectdir/pkg/templates"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
	"github.com/spf13/afero"
)

// InstantiateOptions defines the options for the Instantiate command.
type InstantiateOptions struct {
	// Template is a template name or a path to a template directory.
	Template string
	// Destination is the project directory to create.
	Destination string
	// Store resolves template names.
	Store *templates.Store
	// Resolver supplies the variable values. Names it leaves out fail
	// with a missing variable error.
	Resolver resolver.Resolver
	// Formats classifies files for content substitution (optional).
	Formats *formats.Table
	// DryRun plans without writing.
	DryRun bool
	// FileSystem is the filesystem to use (optional, defaults to the store's).
	FileSystem afero.Fs
}

// Instantiate creates Destination from Template.
func Instantiate(ctx context.Context, opts InstantiateOptions) (*types.InstantiateResult, error) {
	log := logging.GetLogger("commands.instantiate")
	log.Debug().
		Str("command", "Instantiate").
		Str("template", opts.Template).
		Str("destination", opts.Destination).
		Msg("Executing command")

	if opts.Store == nil {
		return nil, errors.New(errors.ErrInternal, "no template store configured")
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = opts.Store.FS
	}
	if fs == nil {
		fs = filesystem.NewOS()
	}
	table := opts.Formats
	if table == nil {
		table = formats.DefaultTable()
	}
	vars := resolver.Resolver(resolver.Static{})
	if opts.Resolver != nil {
		vars = opts.Resolver
	}

	templatePath, err := opts.Store.Resolve(opts.Template)
	if err != nil {
		return nil, err
	}

	// Fail on an occupied destination before asking for any value
	if err := engine.CheckDestination(fs, opts.Destination); err != nil {
		return nil, err
	}

	names, err := collector.CollectAll(fs, templatePath, table)
	if err != nil {
		return nil, err
	}

	values, err := vars.Resolve(ctx, names)
	if err != nil {
		return nil, err
	}

	run, err := engine.Instantiate(ctx, engine.Options{
		FS:              fs,
		TemplateRoot:    templatePath,
		DestinationRoot: opts.Destination,
		Variables:       values,
		Formats:         table,
		DryRun:          opts.DryRun,
	})
	if err != nil {
		return nil, err
	}

	result := &types.InstantiateResult{
		Template:    templatePath,
		Destination: run.Plan.DestinationRoot,
		Variables:   values,
		Operations:  run.Plan.Operations,
		DryRun:      run.DryRun,
		Timestamp:   time.Now(),
		Summary:     run.Summary,
	}

	log.Info().
		Str("command", "Instantiate").
		Int("variables", len(values)).
		Int("operations", len(result.Operations)).
		Bool("dryRun", result.DryRun).
		Msg("Command finished")
	return result, nil
}
