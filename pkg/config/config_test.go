package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/formats"
	gotoml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.TemplatesDir)
	assert.Equal(t, []string{"**/.git", "**/.DS_Store"}, cfg.Save.Ignore)
	assert.True(t, cfg.Prompt.Interactive)
	assert.Empty(t, cfg.Formats)
	assert.Empty(t, cfg.Variables)
}

func TestLoadLayers(t *testing.T) {
	path := writeConfig(t, `
templates_dir = "/srv/templates"

[save]
ignore = ["**/node_modules"]

[prompt]
interactive = false

[formats]
angles = ["tmpl"]

[variables]
"Author" = "Ada"
License = "MIT"
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)

		assert.Equal(t, "/srv/templates", cfg.TemplatesDir)
		assert.Equal(t, []string{"**/node_modules"}, cfg.Save.Ignore)
		assert.False(t, cfg.Prompt.Interactive)
		assert.Equal(t, map[string][]string{"angles": {"tmpl"}}, cfg.Formats)
		assert.Equal(t, map[string]string{"Author": "Ada", "License": "MIT"}, cfg.Variables)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("MKPROJECTDIR_PROMPT__INTERACTIVE", "true")
		t.Setenv("MKPROJECTDIR_SAVE__IGNORE", "**/.git,**/dist")

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)

		assert.True(t, cfg.Prompt.Interactive)
		assert.Equal(t, []string{"**/.git", "**/dist"}, cfg.Save.Ignore)
	})

	t.Run("environment keeps variable name case", func(t *testing.T) {
		t.Setenv("MKPROJECTDIR_VARIABLES__Author", "Grace")
		t.Setenv("MKPROJECTDIR_VARIABLES__year", "2026")

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)

		assert.Equal(t, map[string]string{"Author": "Grace", "License": "MIT", "year": "2026"}, cfg.Variables)
	})

	t.Run("overrides win", func(t *testing.T) {
		t.Setenv("MKPROJECTDIR_PROMPT__INTERACTIVE", "true")

		cfg, err := Load(LoadOptions{
			ConfigFile: path,
			Overrides:  map[string]interface{}{"prompt.interactive": false},
		})
		require.NoError(t, err)
		assert.False(t, cfg.Prompt.Interactive)
	})
}

func TestLoadRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "templates_dir = "},
		{"unknown family", "[formats]\nsquare = [\"txt\"]"},
		{"empty ignore pattern", "[save]\nignore = [\"\"]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(LoadOptions{ConfigFile: writeConfig(t, tt.content)})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
		})
	}
}

func TestFormatsTable(t *testing.T) {
	cfg := &Config{Formats: map[string][]string{
		"angles": {"tmpl"},
		"none":   {"txt"},
	}}

	table, err := cfg.FormatsTable()
	require.NoError(t, err)

	assert.Equal(t, formats.FamilyAngles, table.Classify("Dockerfile.tmpl"))
	assert.Equal(t, formats.FamilyNone, table.Classify("notes.txt"))
	assert.Equal(t, formats.FamilyBraces, table.Classify("README.md"))
}

func TestPathsUsesConfiguredStore(t *testing.T) {
	base := t.TempDir()
	t.Setenv("MKPROJECTDIR_CONFIG_DIR", base)
	t.Setenv("MKPROJECTDIR_TEMPLATES_DIR", "")

	cfg := &Config{TemplatesDir: filepath.Join(base, "store")}
	p, err := cfg.Paths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "store"), p.TemplatesDir())
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"),
			"uncommented value line: %q", line)
	}
	assert.Contains(t, content, `# templates_dir = ""`)
	assert.Contains(t, content, "[save]")

	// still valid TOML
	var out map[string]interface{}
	require.NoError(t, gotoml.Unmarshal([]byte(content), &out))
}

func TestMarshal(t *testing.T) {
	cfg, err := Load(LoadOptions{ConfigFile: writeConfig(t, "[variables]\nAuthor = \"Ada\"\n")})
	require.NoError(t, err)

	data, err := Marshal(cfg)
	require.NoError(t, err)

	var back Config
	require.NoError(t, gotoml.Unmarshal(data, &back))
	assert.Equal(t, cfg.Save.Ignore, back.Save.Ignore)
	assert.Equal(t, "Ada", back.Variables["Author"])
	assert.True(t, back.Prompt.Interactive)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MKPROJECTDIR_PROMPT__INTERACTIVE", "prompt.interactive"},
		{"MKPROJECTDIR_TEMPLATES_DIR", "templates_dir"},
		{"MKPROJECTDIR_VARIABLES__Author", "variables.Author"},
		{"MKPROJECTDIR_Variables__ProjectName", "variables.ProjectName"},
		{"MKPROJECTDIR_FORMATS__Braces", "formats.braces"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}
