// Package placeholders finds and replaces delimiter-wrapped variable tokens.
//
// A token is the text between a start and an end delimiter, for example
// {Project Name} in a path segment or <<Project Name>> in a JSON file. The
// inner text is the variable name, taken verbatim. A name is never empty and
// never holds a newline or the start delimiter. A start delimiter that does
// not open a valid name is literal text, and scanning resumes right after it,
// so `1 << 2` ahead of <<Project Name>> on a later line leaves the shift alone
// and still finds the token.
package placeholders

import (
	"io"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/valyala/fasttemplate"
)

// Delimiters is a start/end tag pair.
type Delimiters struct {
	Start string
	End   string
}

var (
	// Path is used for directory and file names
	Path = Delimiters{Start: "{", End: "}"}

	// Braces is used for markdown, plain text, HTML, TOML and INI contents
	Braces = Delimiters{Start: "{{", End: "}}"}

	// Angles is used for JSON, YAML and script contents
	Angles = Delimiters{Start: "<<", End: ">>"}
)

// Wrap returns name enclosed in the delimiters.
func (d Delimiters) Wrap(name string) string {
	return d.Start + name + d.End
}

func (d Delimiters) isVariable(tag string) bool {
	return tag != "" && !strings.Contains(tag, "\n") && !strings.Contains(tag, d.Start)
}

// scan calls f for every valid name in s and writes everything else to w.
// fasttemplate pairs a start with the first end after it; when that span is
// not a name, only the start is literal and the rest is scanned again.
func (d Delimiters) scan(s string, w io.Writer, f func(w io.Writer, name string) (int, error)) (int64, error) {
	return fasttemplate.ExecuteFunc(s, d.Start, d.End, w, func(w io.Writer, tag string) (int, error) {
		if d.isVariable(tag) {
			return f(w, tag)
		}
		n, err := io.WriteString(w, d.Start)
		if err != nil {
			return n, err
		}
		m, err := d.scan(tag+d.End, w, f)
		return n + int(m), err
	})
}

// Lookup returns the value for name and whether one exists.
type Lookup func(name string) (string, bool)

// MapLookup adapts a plain map to a Lookup.
func MapLookup(vars map[string]string) Lookup {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

// Names returns the distinct variable names in s, in order of first
// appearance.
func Names(s string, d Delimiters) []string {
	var names []string
	seen := make(map[string]bool)

	_, _ = d.scan(s, io.Discard, func(w io.Writer, name string) (int, error) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		return 0, nil
	})

	return names
}

// Substitute replaces every token in s with its value. The first name with
// no value aborts the substitution with an ErrMissingVariable error.
func Substitute(s string, d Delimiters, lookup Lookup) (string, error) {
	var sb strings.Builder
	_, err := d.scan(s, &sb, func(w io.Writer, name string) (int, error) {
		value, ok := lookup(name)
		if !ok {
			return 0, errors.MissingVariable(name, "")
		}
		return io.WriteString(w, value)
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
