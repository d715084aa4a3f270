package resolver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/mkprojectdir/pkg/engine"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Prompt asks for each name in order. On a terminal it uses pterm's
// interactive text input; otherwise it reads one line per name from In.
// An empty answer takes the default when there is one.
type Prompt struct {
	In       io.Reader
	Out      io.Writer
	Defaults map[string]string
	// Terminal selects the pterm input
	Terminal bool

	reader *bufio.Reader
}

// NewPrompt creates a Prompt on in/out, using the terminal input when in is
// a TTY
func NewPrompt(in io.Reader, out io.Writer, defaults map[string]string) *Prompt {
	terminal := false
	if f, ok := in.(*os.File); ok {
		terminal = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Prompt{In: in, Out: out, Defaults: defaults, Terminal: terminal}
}

// Resolve implements Resolver. End of input stops prompting; remaining names
// take their defaults or stay unresolved.
func (p *Prompt) Resolve(ctx context.Context, names []string) (engine.Variables, error) {
	vars := engine.Variables{}
	eof := false

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCancelled, "prompt cancelled")
		}

		def, hasDefault := p.Defaults[name]
		if eof {
			if hasDefault {
				vars[name] = def
			}
			continue
		}

		answer, err := p.ask(name, def, hasDefault)
		if err == io.EOF {
			eof = true
			if hasDefault {
				vars[name] = def
			}
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to read value for %q", name)
		}

		if answer == "" && hasDefault {
			answer = def
		}
		vars[name] = answer
	}

	return vars, nil
}

func (p *Prompt) ask(name, def string, hasDefault bool) (string, error) {
	label := name
	if hasDefault {
		label = fmt.Sprintf("%s [%s]", name, def)
	}

	if p.Terminal {
		return pterm.DefaultInteractiveTextInput.Show(label)
	}

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	if p.Out != nil {
		_, _ = fmt.Fprintf(p.Out, "%s: ", label)
	}

	line, err := p.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
