package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/filesystem"
	"github.com/arthur-debert/mkprojectdir/pkg/formats"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/placeholders"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
	"github.com/spf13/afero"
)

// Variables maps variable names to their values
type Variables map[string]string

// Options configures one instantiation
type Options struct {
	// FS is the filesystem holding both the template and the destination.
	// Defaults to the OS filesystem.
	FS afero.Fs
	// TemplateRoot is the template directory
	TemplateRoot string
	// DestinationRoot is the project directory to create. It must not exist
	// or be an empty directory.
	DestinationRoot string
	// Variables must hold a value for every variable the template uses
	Variables Variables
	// Formats classifies files for content substitution. Defaults to
	// formats.DefaultTable().
	Formats *formats.Table
	// DryRun plans without writing
	DryRun bool
}

// Plan is the ordered list of operations for one instantiation
type Plan struct {
	TemplateRoot    string
	DestinationRoot string
	Operations      []types.Operation
}

// Result is returned by Instantiate
type Result struct {
	Plan    *Plan
	Summary types.Summary
	DryRun  bool
}

func (o *Options) setDefaults() {
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Formats == nil {
		o.Formats = formats.DefaultTable()
	}
	if o.Variables == nil {
		o.Variables = Variables{}
	}
}

// Instantiate plans the instantiation and, unless DryRun is set, executes it
func Instantiate(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.GetLogger("engine")
	done := logging.LogOperationStart(logger, "instantiate")
	defer done()

	opts.setDefaults()

	plan, err := BuildPlan(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Plan: plan, DryRun: opts.DryRun}
	if opts.DryRun {
		for _, op := range plan.Operations {
			result.Summary.Add(op)
		}
		logger.Info().
			Int("operations", len(plan.Operations)).
			Msg("Dry run, nothing written")
		return result, nil
	}

	summary, err := Execute(ctx, opts.FS, plan)
	result.Summary = summary
	if err != nil {
		return result, err
	}

	logger.Info().
		Str("destination", plan.DestinationRoot).
		Int("dirs", summary.DirsCreated).
		Int("written", summary.FilesWritten).
		Int("copied", summary.FilesCopied).
		Msg("Template instantiated")

	return result, nil
}

// BuildPlan walks the template and computes every operation without
// writing anything
func BuildPlan(ctx context.Context, opts Options) (*Plan, error) {
	opts.setDefaults()
	logger := logging.GetLogger("engine")
	fs := opts.FS

	templateRoot, destRoot, err := cleanRoots(opts.TemplateRoot, opts.DestinationRoot)
	if err != nil {
		return nil, err
	}

	if err := checkTemplate(fs, templateRoot); err != nil {
		return nil, err
	}
	createRoot, err := checkDestination(fs, destRoot)
	if err != nil {
		return nil, err
	}

	plan := &Plan{TemplateRoot: templateRoot, DestinationRoot: destRoot}
	if createRoot {
		plan.Operations = append(plan.Operations, types.Operation{
			Type:   types.OperationCreateDir,
			Source: templateRoot,
			Target: destRoot,
			Mode:   filesystem.DirMode,
		})
	}

	lookup := placeholders.MapLookup(opts.Variables)
	// template directory -> destination directory
	dirs := map[string]string{templateRoot: destRoot}
	// destination path -> template path that claimed it
	claimed := make(map[string]string)

	err = afero.Walk(fs, templateRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.IOFailure(err, "walk", path)
		}
		if path == templateRoot {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCancelled, "planning cancelled")
		}

		rel := relative(templateRoot, path)

		name, err := substitute(info.Name(), placeholders.Path, lookup, rel)
		if err != nil {
			return err
		}
		if err := validSegment(name, info.Name(), rel); err != nil {
			return err
		}

		target := filepath.Join(dirs[filepath.Dir(path)], name)
		if other, ok := claimed[target]; ok {
			return errors.DestinationExists(target).
				WithDetail("template_paths", []string{other, rel})
		}
		claimed[target] = rel

		if info.IsDir() {
			dirs[path] = target
			plan.Operations = append(plan.Operations, types.Operation{
				Type:   types.OperationCreateDir,
				Source: path,
				Target: target,
				Mode:   filesystem.DirMode,
			})
			return nil
		}

		resolved, ok := filesystem.Resolve(fs, path, info)
		if !ok || !resolved.Mode().IsRegular() {
			logger.Warn().Str("path", rel).Msg("Skipping entry that is not a regular file")
			delete(claimed, target)
			return nil
		}

		op, err := planFile(fs, opts.Formats, lookup, path, rel, target, resolved.Mode().Perm())
		if err != nil {
			return err
		}
		plan.Operations = append(plan.Operations, op)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("template", templateRoot).
		Str("destination", destRoot).
		Int("operations", len(plan.Operations)).
		Msg("Plan built")

	return plan, nil
}

func planFile(fs afero.Fs, table *formats.Table, lookup placeholders.Lookup, path, rel, target string, mode os.FileMode) (types.Operation, error) {
	family := table.Classify(path)
	delims, recognized := family.Delimiters()
	if !recognized {
		return types.Operation{
			Type:   types.OperationCopyFile,
			Source: path,
			Target: target,
			Mode:   mode,
		}, nil
	}

	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return types.Operation{}, errors.IOFailure(err, "read", path)
	}
	out, err := substitute(string(content), delims, lookup, rel)
	if err != nil {
		return types.Operation{}, err
	}

	return types.Operation{
		Type:    types.OperationWriteFile,
		Source:  path,
		Target:  target,
		Content: []byte(out),
		Mode:    mode,
		Family:  string(family),
	}, nil
}

// Execute applies a plan in order and returns what was done, also on failure
func Execute(ctx context.Context, fs afero.Fs, plan *Plan) (types.Summary, error) {
	logger := logging.GetLogger("engine")
	var summary types.Summary

	for _, op := range plan.Operations {
		if err := ctx.Err(); err != nil {
			return summary, errors.Wrap(err, errors.ErrCancelled, "instantiation cancelled")
		}

		if err := apply(fs, op); err != nil {
			logger.Error().Err(err).Str("target", op.Target).Msg("Operation failed")
			return summary, err
		}
		summary.Add(op)

		logger.Trace().
			Str("type", string(op.Type)).
			Str("target", op.Target).
			Msg("Operation applied")
	}

	return summary, nil
}

func apply(fs afero.Fs, op types.Operation) error {
	var err error
	var verb string

	switch op.Type {
	case types.OperationCreateDir:
		verb = "mkdir"
		err = fs.Mkdir(op.Target, op.Mode)
	case types.OperationWriteFile:
		verb = "write"
		err = filesystem.WriteFileExclusive(fs, op.Target, op.Content, op.Mode)
	case types.OperationCopyFile:
		verb = "copy"
		err = filesystem.CopyFile(fs, op.Source, op.Target, op.Mode)
	default:
		return errors.Newf(errors.ErrInternal, "unsupported operation type: %s", op.Type)
	}

	if err == nil {
		return nil
	}
	if os.IsExist(err) {
		return errors.DestinationExists(op.Target)
	}
	return errors.IOFailure(err, verb, op.Target)
}

// substitute wraps placeholders.Substitute, attaching rel to missing
// variable errors
func substitute(s string, d placeholders.Delimiters, lookup placeholders.Lookup, rel string) (string, error) {
	out, err := placeholders.Substitute(s, d, lookup)
	if err == nil {
		return out, nil
	}
	if errors.IsErrorCode(err, errors.ErrMissingVariable) {
		name, _ := errors.GetErrorDetails(err)[errors.DetailVariable].(string)
		return "", errors.MissingVariable(name, rel)
	}
	return "", err
}

// validSegment rejects names that would leave their directory
func validSegment(name, original, rel string) error {
	if name == original {
		return nil
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return errors.Newf(errors.ErrInvalidInput,
			"variables in %s produce the invalid name %q", rel, name).
			WithDetail(errors.DetailPath, rel)
	}
	return nil
}

func cleanRoots(templateRoot, destRoot string) (string, string, error) {
	if templateRoot == "" || destRoot == "" {
		return "", "", errors.New(errors.ErrInvalidInput, "template and destination are required")
	}

	tpl, err := filepath.Abs(templateRoot)
	if err != nil {
		return "", "", errors.IOFailure(err, "resolve", templateRoot)
	}
	dst, err := filepath.Abs(destRoot)
	if err != nil {
		return "", "", errors.IOFailure(err, "resolve", destRoot)
	}

	if rel, err := filepath.Rel(tpl, dst); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", errors.Newf(errors.ErrInvalidInput,
			"destination %s is inside template %s", dst, tpl)
	}

	return tpl, dst, nil
}

func checkTemplate(fs afero.Fs, templateRoot string) error {
	info, err := fs.Stat(templateRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.TemplateNotFound(templateRoot)
		}
		return errors.IOFailure(err, "stat", templateRoot)
	}
	if !info.IsDir() {
		return errors.TemplateNotFound(templateRoot).WithDetail(errors.DetailPath, templateRoot)
	}
	return nil
}

// CheckDestination reports DestinationExists unless destRoot is missing or
// an empty directory, and IOFailure when a missing destRoot has no parent
// directory. Instantiate applies the same check while planning;
// callers use this to fail before asking for variable values.
func CheckDestination(fs afero.Fs, destRoot string) error {
	_, err := checkDestination(fs, destRoot)
	return err
}

// checkDestination enforces the collision policy and reports whether the
// destination root has to be created
func checkDestination(fs afero.Fs, destRoot string) (bool, error) {
	exists, err := filesystem.Exists(fs, destRoot)
	if err != nil {
		return false, errors.IOFailure(err, "stat", destRoot)
	}
	if !exists {
		// the root is created on its own, never its parents
		parent := filepath.Dir(destRoot)
		info, err := fs.Stat(parent)
		if err != nil && !os.IsNotExist(err) {
			return false, errors.IOFailure(err, "stat", parent)
		}
		if err != nil || !info.IsDir() {
			return false, errors.Newf(errors.ErrIOFailure,
				"%s could not be created because of missing parents", destRoot).
				WithDetail(errors.DetailOp, "mkdir").
				WithDetail(errors.DetailPath, destRoot)
		}
		return true, nil
	}

	empty, err := filesystem.IsEmptyDir(fs, destRoot)
	if err != nil {
		return false, errors.IOFailure(err, "read", destRoot)
	}
	if !empty {
		return false, errors.DestinationExists(destRoot)
	}
	return false, nil
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
