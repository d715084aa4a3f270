// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/style"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
	"github.com/charmbracelet/glamour"
)

// Renderer provides rich terminal output using lipgloss styles, with
// markdown rendered by glamour
type Renderer struct {
	output io.Writer
	styled *style.TerminalRenderer
	// Width wraps rendered markdown; 0 keeps glamour's default
	Width int
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		styled: style.NewTerminalRenderer(),
		Width:  80,
	}, nil
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	var out string

	switch v := result.(type) {
	case *types.InstantiateResult:
		if v.DryRun {
			out = strings.Join([]string{
				fmt.Sprintf("%s %s %s %s", style.InfoIndicator, style.TitleStyle.Render("Dry run:"),
					style.PathStyle.Render(v.Template), "→ "+style.PathStyle.Render(v.Destination)),
				"",
				r.styled.RenderOperations(v.Operations),
				"",
				r.styled.RenderSummary(v.Summary),
			}, "\n")
		} else {
			out = fmt.Sprintf("%s Created %s\n  %s", style.SuccessIndicator,
				style.PathStyle.Render(v.Destination), r.styled.RenderSummary(v.Summary))
		}
	case *types.ListTemplatesResult:
		out = r.styled.RenderTemplateList(v.Templates)
	case *types.SaveTemplateResult:
		out = fmt.Sprintf("%s Saved template %s (%d files)", style.SuccessIndicator,
			style.Bold(v.Name), v.FilesCopied)
		if v.Replaced {
			out += style.MutedStyle.Render(", replacing the previous version")
		}
	case *types.ShowTemplateResult:
		out = r.renderShow(v)
	case *types.RemoveTemplateResult:
		out = fmt.Sprintf("%s Removed template %s", style.SuccessIndicator, style.Bold(v.Name))
	case *types.GenConfigResult:
		if len(v.FilesWritten) == 0 {
			out = strings.TrimRight(v.ConfigContent, "\n")
		} else {
			out = fmt.Sprintf("%s Wrote %s", style.SuccessIndicator,
				style.PathStyle.Render(strings.Join(v.FilesWritten, ", ")))
		}
	default:
		out = fmt.Sprintf("%+v", result)
	}

	_, err := fmt.Fprintln(r.output, out)
	return err
}

func (r *Renderer) renderShow(v *types.ShowTemplateResult) string {
	parts := []string{
		style.TitleStyle.Render(v.Template.Name),
		style.PathStyle.Render(v.Template.Path),
		style.MutedStyle.Render(fmt.Sprintf("%d directories, %d files", v.Dirs, v.Files)),
		"",
		style.TitleStyle.Render("Variables"),
		r.styled.RenderVariables(v.Variables),
	}
	if v.Readme != "" {
		parts = append(parts, "", r.renderMarkdown(v.Readme))
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

// renderMarkdown falls back to the raw text when glamour fails
func (r *Renderer) renderMarkdown(content string) string {
	options := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, r.styled.RenderError(err))
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
