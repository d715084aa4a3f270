package style

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
)

// Renderer defines the interface for rendering various output types
type Renderer interface {
	RenderTemplateList(templates []types.TemplateInfo) string
	RenderOperations(ops []types.Operation) string
	RenderSummary(s types.Summary) string
	RenderVariables(names []string) string
	RenderError(err error) string
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderTemplateList renders the stored templates
func (r *TerminalRenderer) RenderTemplateList(templates []types.TemplateInfo) string {
	if len(templates) == 0 {
		return MutedStyle.Render("No templates found")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Templates") + "\n\n")
	for _, t := range templates {
		result.WriteString(fmt.Sprintf("%s %s\n", InfoIndicator, Bold(t.Name)))
		result.WriteString(Indent(PathStyle.Render(t.Path), 1) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderOperations renders a plan
func (r *TerminalRenderer) RenderOperations(ops []types.Operation) string {
	if len(ops) == 0 {
		return MutedStyle.Render("No operations to perform")
	}

	var result strings.Builder
	result.WriteString(TitleStyle.Render("Operations") + "\n\n")
	for _, op := range ops {
		result.WriteString(r.renderOperation(op) + "\n")
	}

	return strings.TrimRight(result.String(), "\n")
}

func (r *TerminalRenderer) renderOperation(op types.Operation) string {
	var typeName string
	switch op.Type {
	case types.OperationCreateDir:
		typeName = DirStyle.Render("mkdir")
	case types.OperationWriteFile:
		typeName = WriteStyle.Render("write")
	case types.OperationCopyFile:
		typeName = CopyStyle.Render("copy ")
	default:
		typeName = InfoStyle.Render(string(op.Type))
	}
	return fmt.Sprintf("%s %s %s", PendingIndicator, typeName, PathStyle.Render(op.Target))
}

// RenderSummary renders operation counts
func (r *TerminalRenderer) RenderSummary(s types.Summary) string {
	return MutedStyle.Render(summaryText(s))
}

// RenderVariables renders variable names
func (r *TerminalRenderer) RenderVariables(names []string) string {
	if len(names) == 0 {
		return MutedStyle.Render("No variables")
	}
	styled := make([]string, len(names))
	for i, name := range names {
		styled[i] = InfoIndicator + " " + VariableStyle.Render(name)
	}
	return strings.Join(styled, "\n")
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", ErrorIndicator, ErrorStyle.Render(errors.Message(err)))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderTemplateList renders one template name per line
func (r *PlainRenderer) RenderTemplateList(templates []types.TemplateInfo) string {
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	return strings.Join(names, "\n")
}

// RenderOperations renders plain operations
func (r *PlainRenderer) RenderOperations(ops []types.Operation) string {
	if len(ops) == 0 {
		return "No operations to perform"
	}

	var result strings.Builder
	for _, op := range ops {
		result.WriteString(fmt.Sprintf("%s: %s\n", op.Type, op.Target))
	}

	return strings.TrimRight(result.String(), "\n")
}

// RenderSummary renders operation counts
func (r *PlainRenderer) RenderSummary(s types.Summary) string {
	return summaryText(s)
}

// RenderVariables renders one variable name per line
func (r *PlainRenderer) RenderVariables(names []string) string {
	return strings.Join(names, "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return "Error: " + errors.Message(err)
}

func summaryText(s types.Summary) string {
	return fmt.Sprintf("%s, %s written, %s copied",
		plural(s.DirsCreated, "directory", "directories"),
		plural(s.FilesWritten, "file", "files"),
		plural(s.FilesCopied, "file", "files"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
