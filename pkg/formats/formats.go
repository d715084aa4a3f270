// Package formats classifies template files by extension into the delimiter
// family used for their contents.
//
// The classification is a lookup table rather than code: adding a format is
// a matter of adding an extension to a family, either in DefaultTable or in
// the [formats] section of the configuration file.
package formats

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/placeholders"
)

// Family names a content delimiter convention
type Family string

const (
	// FamilyNone marks files that are copied byte-for-byte
	FamilyNone Family = "none"

	// FamilyBraces marks files whose variables are written {{name}}
	FamilyBraces Family = "braces"

	// FamilyAngles marks files whose variables are written <<name>>
	FamilyAngles Family = "angles"
)

// Families lists every known family
var Families = []Family{FamilyBraces, FamilyAngles, FamilyNone}

// Delimiters returns the content delimiters of the family. The second value
// is false for FamilyNone.
func (f Family) Delimiters() (placeholders.Delimiters, bool) {
	switch f {
	case FamilyBraces:
		return placeholders.Braces, true
	case FamilyAngles:
		return placeholders.Angles, true
	default:
		return placeholders.Delimiters{}, false
	}
}

// ParseFamily converts a configuration string to a Family
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Families {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format family: %s", s)
}

// defaultExtensions is the built-in table, keyed by family
var defaultExtensions = map[Family][]string{
	// markdown, plain text, HTML, TOML, INI
	FamilyBraces: {"md", "markdown", "txt", "text", "html", "htm", "toml", "ini"},
	// JSON, YAML, script languages
	FamilyAngles: {"json", "yaml", "yml", "py", "sh", "bash", "zsh", "fish", "rb", "pl", "js", "mjs", "ts", "lua", "ps1"},
}

// Table maps lowercase extensions (without the dot) to a family
type Table struct {
	byExt map[string]Family
}

// DefaultTable returns a fresh copy of the built-in table
func DefaultTable() *Table {
	t := &Table{byExt: make(map[string]Family)}
	for family, exts := range defaultExtensions {
		for _, ext := range exts {
			t.byExt[normalizeExt(ext)] = family
		}
	}
	return t
}

// With returns a copy of the table with the given extensions assigned to
// the given families. Keys are family names as accepted by ParseFamily.
func (t *Table) With(overrides map[string][]string) (*Table, error) {
	next := &Table{byExt: make(map[string]Family, len(t.byExt))}
	for ext, family := range t.byExt {
		next.byExt[ext] = family
	}

	// Apply in a stable order so an extension listed under two families
	// always ends up in the same one.
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		family, err := ParseFamily(key)
		if err != nil {
			return nil, err
		}
		for _, ext := range overrides[key] {
			ext = normalizeExt(ext)
			if ext == "" {
				continue
			}
			if family == FamilyNone {
				delete(next.byExt, ext)
				continue
			}
			next.byExt[ext] = family
		}
	}

	return next, nil
}

// Classify returns the family for a file path based on its last extension
func (t *Table) Classify(path string) Family {
	ext := normalizeExt(filepath.Ext(path))
	if ext == "" {
		return FamilyNone
	}
	if family, ok := t.byExt[ext]; ok {
		return family
	}
	return FamilyNone
}

// Extensions returns the sorted extensions assigned to a family
func (t *Table) Extensions(family Family) []string {
	var exts []string
	for ext, f := range t.byExt {
		if f == family {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
