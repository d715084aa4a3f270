package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithEnvironmentOverrides(t *testing.T) {
	base := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(base, "cfg"))
	t.Setenv(EnvTemplatesDir, filepath.Join(base, "tpl"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))

	p, err := New("/ignored/because/env/wins")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "cfg"), p.ConfigDir())
	assert.Equal(t, filepath.Join(base, "cfg", "config.toml"), p.ConfigFilePath())
	assert.Equal(t, filepath.Join(base, "tpl"), p.TemplatesDir())
	assert.Equal(t, filepath.Join(base, "tpl", "python"), p.TemplatePath("python"))
	assert.Equal(t, filepath.Join(base, "state", "mkprojectdir"), p.StateDir())
	assert.Equal(t, filepath.Join(base, "state", "mkprojectdir", "mkprojectdir.log"), p.LogFilePath())
}

func TestTemplatesDirPrecedence(t *testing.T) {
	base := t.TempDir()
	t.Setenv(EnvConfigDir, base)
	t.Setenv(EnvTemplatesDir, "")

	t.Run("default inside config dir", func(t *testing.T) {
		p, err := New("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "project_templates"), p.TemplatesDir())
	})

	t.Run("configured value", func(t *testing.T) {
		p, err := New(filepath.Join(base, "mine"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(base, "mine"), p.TemplatesDir())
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/templates", filepath.Join(home, "templates")},
		{"~other/templates", "~other/templates"},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestLooksLikePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"python", false},
		{"art_template", false},
		{"nested/name", false},
		{"./python", true},
		{"../python", true},
		{"/srv/templates/python", true},
		{"~/templates/python", true},
		{".", true},
		{"..", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikePath(tt.in))
		})
	}
}
