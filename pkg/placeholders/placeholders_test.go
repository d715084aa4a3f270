package placeholders_test

import (
	"testing"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/placeholders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim placeholders.Delimiters
		want  []string
	}{
		{"no tokens", "README.md", placeholders.Path, nil},
		{"single path token", "{Project Name}.config.json", placeholders.Path, []string{"Project Name"}},
		{"two path tokens", "{a}-{b}", placeholders.Path, []string{"a", "b"}},
		{"duplicates collapse", "{a}{b}{a}", placeholders.Path, []string{"a", "b"}},
		{"braces content", "Project: {{Project Name}} by {{Author}}", placeholders.Braces, []string{"Project Name", "Author"}},
		{"angles content", `{"name": "<<Project Name>>"}`, placeholders.Angles, []string{"Project Name"}},
		{"angles ignore braces", "{{Project Name}}", placeholders.Angles, nil},
		{"braces ignore angles", "<<Project Name>>", placeholders.Braces, nil},
		{"whitespace is part of the name", "{{ x }}", placeholders.Braces, []string{" x "}},
		{"empty token is not a variable", "fn() {}", placeholders.Path, nil},
		{"unterminated token", "{open", placeholders.Path, nil},
		{"stray start before path token", "{{x}}", placeholders.Path, []string{"x"}},
		{"shift before angles token", "FLAG = 1 << 2\nNAME = \"<<Project Name>>\"", placeholders.Angles, []string{"Project Name"}},
		{"stray braces before token", "use {{ in prose, then {{Project Name}}", placeholders.Braces, []string{"Project Name"}},
		{"multi-line span is not a variable", "x = 1 << 3\nmask = flags >> 1", placeholders.Angles, nil},
		{"heredoc then token", "cat <<EOF\nhello\nEOF\necho done >> log.txt\n<<Project Name>>", placeholders.Angles, []string{"Project Name"}},
		{"empty token then token", "{}{a}", placeholders.Path, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, placeholders.Names(tt.input, tt.delim))
		})
	}
}

func TestSubstitute(t *testing.T) {
	vars := map[string]string{
		"Project Name": "Nebula",
		"Author":       "Ada",
		"empty":        "",
	}
	lookup := placeholders.MapLookup(vars)

	tests := []struct {
		name  string
		input string
		delim placeholders.Delimiters
		want  string
	}{
		{"path segment", "{Project Name}.config.json", placeholders.Path, "Nebula.config.json"},
		{"braces content", "Project: {{Project Name}}", placeholders.Braces, "Project: Nebula"},
		{"angles content", "<<Project Name>>", placeholders.Angles, "Nebula"},
		{"repeated name", "{{Author}}/{{Author}}", placeholders.Braces, "Ada/Ada"},
		{"empty value", "a{{empty}}b", placeholders.Braces, "ab"},
		{"other family untouched", "<<Author>> {{Author}}", placeholders.Braces, "<<Author>> Ada"},
		{"empty token kept", "func() {}", placeholders.Path, "func() {}"},
		{"unterminated kept", "x {{Author", placeholders.Braces, "x {{Author"},
		{"stray path start kept", "{{Author}}", placeholders.Path, "{Ada}"},
		{"shift kept before token", "FLAG = 1 << 2\nNAME = \"<<Project Name>>\"", placeholders.Angles, "FLAG = 1 << 2\nNAME = \"Nebula\""},
		{"stray braces kept before token", "use {{ in prose, then {{Project Name}}", placeholders.Braces, "use {{ in prose, then Nebula"},
		{"multi-line span kept", "x = 1 << 3\nmask = flags >> 1", placeholders.Angles, "x = 1 << 3\nmask = flags >> 1"},
		{"heredoc kept", "cat <<EOF\nhi\nEOF\necho <<Author>> >> log.txt", placeholders.Angles, "cat <<EOF\nhi\nEOF\necho Ada >> log.txt"},
		{"multibyte", "héllo {{Author}} ✓", placeholders.Braces, "héllo Ada ✓"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := placeholders.Substitute(tt.input, tt.delim, lookup)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstituteWithoutTokensIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		"json { \"a\": 1 }",
		"shift << 2\nand >> 3 on the next line",
		"{ spaced } but braces family",
		"{{\n}} and <<\n>>",
		"a {{ b {{ c",
		"cat <<EOF\nbody\nEOF",
	}
	failing := func(string) (string, bool) { return "", false }

	for _, in := range inputs {
		for _, d := range []placeholders.Delimiters{placeholders.Braces, placeholders.Angles} {
			assert.Empty(t, placeholders.Names(in, d), "input %q", in)
			got, err := placeholders.Substitute(in, d, failing)
			require.NoError(t, err, "input %q", in)
			assert.Equal(t, in, got)
		}
	}
}

func TestSubstituteMissingVariable(t *testing.T) {
	_, err := placeholders.Substitute("{{known}} {{unknown}}", placeholders.Braces,
		placeholders.MapLookup(map[string]string{"known": "k"}))

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVariable))
	assert.Equal(t, "unknown", errors.GetErrorDetails(err)[errors.DetailVariable])
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "{x}", placeholders.Path.Wrap("x"))
	assert.Equal(t, "{{x}}", placeholders.Braces.Wrap("x"))
	assert.Equal(t, "<<x>>", placeholders.Angles.Wrap("x"))
}
