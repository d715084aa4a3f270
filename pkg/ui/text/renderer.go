// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/style"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
	plain  *style.PlainRenderer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{
		output: output,
		plain:  style.NewPlainRenderer(),
	}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	var out string

	switch v := result.(type) {
	case *types.InstantiateResult:
		if v.DryRun {
			out = fmt.Sprintf("Dry run: %s -> %s\n%s\n%s",
				v.Template, v.Destination, r.plain.RenderOperations(v.Operations), r.plain.RenderSummary(v.Summary))
		} else {
			out = fmt.Sprintf("Created %s (%s)", v.Destination, r.plain.RenderSummary(v.Summary))
		}
	case *types.ListTemplatesResult:
		out = r.plain.RenderTemplateList(v.Templates)
	case *types.SaveTemplateResult:
		out = fmt.Sprintf("Saved template %s to %s (%d files)", v.Name, v.Path, v.FilesCopied)
		if v.Replaced {
			out += ", replacing the previous version"
		}
	case *types.ShowTemplateResult:
		out = r.renderShow(v)
	case *types.RemoveTemplateResult:
		out = fmt.Sprintf("Removed template %s (%s)", v.Name, v.Path)
	case *types.GenConfigResult:
		if len(v.FilesWritten) == 0 {
			out = strings.TrimRight(v.ConfigContent, "\n")
		} else {
			out = "Wrote " + strings.Join(v.FilesWritten, ", ")
		}
	default:
		out = fmt.Sprintf("%+v", result)
	}

	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(r.output, out)
	return err
}

func (r *Renderer) renderShow(v *types.ShowTemplateResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\n", v.Template.Name)
	fmt.Fprintf(&b, "Path: %s\n", v.Template.Path)
	fmt.Fprintf(&b, "Contents: %d directories, %d files\n", v.Dirs, v.Files)
	if len(v.Variables) == 0 {
		b.WriteString("Variables: none\n")
	} else {
		b.WriteString("Variables:\n")
		for _, name := range v.Variables {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if v.Readme != "" {
		b.WriteString("\n")
		b.WriteString(v.Readme)
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, r.plain.RenderError(err))
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
