package ui_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/types"
	"github.com/arthur-debert/mkprojectdir/pkg/ui"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderer(t *testing.T) {
	for _, format := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(format, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestTextRendering(t *testing.T) {
	tests := []struct {
		name   string
		result interface{}
		want   string
	}{
		{
			name: "list",
			result: &types.ListTemplatesResult{Templates: []types.TemplateInfo{
				{Name: "art_template"}, {Name: "python"},
			}},
			want: "art_template\npython\n",
		},
		{
			name:   "empty list prints nothing",
			result: &types.ListTemplatesResult{},
			want:   "",
		},
		{
			name: "instantiate",
			result: &types.InstantiateResult{
				Destination: "/work/nebula",
				Summary:     types.Summary{DirsCreated: 1, FilesWritten: 2},
			},
			want: "Created /work/nebula (1 directory, 2 files written, 0 files copied)\n",
		},
		{
			name: "dry run",
			result: &types.InstantiateResult{
				Template:    "/store/art",
				Destination: "/work/nebula",
				DryRun:      true,
				Operations: []types.Operation{
					{Type: types.OperationCreateDir, Target: "/work/nebula"},
					{Type: types.OperationCopyFile, Target: "/work/nebula/logo.png"},
				},
				Summary: types.Summary{DirsCreated: 1, FilesCopied: 1},
			},
			want: "Dry run: /store/art -> /work/nebula\n" +
				"create_dir: /work/nebula\n" +
				"copy_file: /work/nebula/logo.png\n" +
				"1 directory, 0 files written, 1 file copied\n",
		},
		{
			name: "show",
			result: &types.ShowTemplateResult{
				Template:  types.TemplateInfo{Name: "art", Path: "/store/art"},
				Variables: []string{"Project Name", "Author"},
				Files:     2,
				Readme:    "# Art\n",
			},
			want: "Template: art\nPath: /store/art\nContents: 0 directories, 2 files\n" +
				"Variables:\n  Project Name\n  Author\n\n# Art\n",
		},
		{
			name:   "remove",
			result: &types.RemoveTemplateResult{Name: "art", Path: "/store/art"},
			want:   "Removed template art (/store/art)\n",
		},
		{
			name:   "config content",
			result: &types.GenConfigResult{ConfigContent: "[save]\n"},
			want:   "[save]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r, err := ui.NewRenderer(ui.FormatText, &buf)
			require.NoError(t, err)

			require.NoError(t, r.RenderResult(tt.result))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONRendering(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&types.SaveTemplateResult{Name: "art", FilesCopied: 3}))
	var saved map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &saved))
	assert.Equal(t, "art", saved["name"])
	assert.Equal(t, float64(3), saved["filesCopied"])

	buf.Reset()
	require.NoError(t, r.RenderError(errors.MissingVariable("Author", "README.md")))
	var failed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &failed))
	assert.Equal(t, "MISSING_VARIABLE", failed["code"])
	assert.Equal(t, `no value for variable "Author" in README.md`, failed["error"])
}

func TestTerminalRenderingIncludesReadme(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatTerminal, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderResult(&types.ShowTemplateResult{
		Template:  types.TemplateInfo{Name: "art", Path: "/store/art"},
		Variables: []string{"Project Name"},
		Readme:    "# Nebula docs\n\nSome text.\n",
	}))

	out := buf.String()
	assert.Contains(t, out, "art")
	assert.Contains(t, out, "Project Name")
	assert.Contains(t, out, "Nebula docs")
}
