// Package resolver supplies values for template variables.
//
// A Resolver is asked for a list of names and returns the values it knows.
// Names it cannot answer are simply left out; the engine reports them as
// missing variables. Resolvers compose with Chain, where earlier entries win.
package resolver

import (
	"context"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/engine"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
)

// Resolver returns values for the requested variable names
type Resolver interface {
	Resolve(ctx context.Context, names []string) (engine.Variables, error)
}

// Static answers from an in-memory map
type Static map[string]string

// Resolve implements Resolver
func (s Static) Resolve(_ context.Context, names []string) (engine.Variables, error) {
	return pick(s, names), nil
}

// Defaults answers from configured default values. It behaves like Static
// and exists so the chain reads as what it is.
type Defaults map[string]string

// Resolve implements Resolver
func (d Defaults) Resolve(_ context.Context, names []string) (engine.Variables, error) {
	return pick(d, names), nil
}

// Chain asks each resolver in turn for the names still missing
type Chain []Resolver

// Resolve implements Resolver
func (c Chain) Resolve(ctx context.Context, names []string) (engine.Variables, error) {
	vars := engine.Variables{}
	pending := names

	for _, r := range c {
		if len(pending) == 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCancelled, "variable resolution cancelled")
		}

		got, err := r.Resolve(ctx, pending)
		if err != nil {
			return nil, err
		}

		var next []string
		for _, name := range pending {
			if v, ok := got[name]; ok {
				vars[name] = v
			} else {
				next = append(next, name)
			}
		}
		pending = next
	}

	return vars, nil
}

// Missing returns the names that have no value in vars, in order
func Missing(names []string, vars engine.Variables) []string {
	var missing []string
	for _, name := range names {
		if _, ok := vars[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// ParseAssignments turns name=value pairs into a Static resolver. The name
// is everything before the first '=' and may contain spaces.
func ParseAssignments(pairs []string) (Static, error) {
	s := Static{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid assignment %q, expected name=value", pair)
		}
		s[name] = value
	}
	return s, nil
}

func pick(values map[string]string, names []string) engine.Variables {
	vars := engine.Variables{}
	for _, name := range names {
		if v, ok := values[name]; ok {
			vars[name] = v
		}
	}
	return vars
}
