package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cutprolog/prolog"
	"github.com/cutprolog/prolog/engine"
)

var errHalt = errors.New("halt")

// lineReader is a line-oriented input such as *terminal.Terminal.
type lineReader interface {
	ReadLine() (string, error)
	SetPrompt(prompt string)
}

// session runs top-level commands against an interpreter and reports the results to out.
type session struct {
	i      *prolog.Interpreter
	out    io.Writer
	colors palette
	prompt string
	halted bool
}

func newSession(out io.Writer, cfg Config, colors palette) *session {
	s := session{
		i:      prolog.New(),
		out:    out,
		colors: colors,
		prompt: cfg.Prompt,
	}
	s.i.Register0("halt", func(_ *engine.VM, env *engine.Env) (*engine.Env, bool, error) {
		s.halted = true
		return env, true, nil
	})
	return &s
}

// handleLine reads a line and runs the buffered query once it's complete. A query which lacks its full stop stays in
// buf for the next line.
func (s *session) handleLine(ctx context.Context, buf *strings.Builder, t lineReader, keys io.RuneReader) error {
	if buf.Len() == 0 {
		t.SetPrompt(s.prompt)
	} else {
		t.SetPrompt("|  ")
	}

	line, err := t.ReadLine()
	if err != nil {
		if err == io.EOF {
			return err
		}
		logrus.WithError(err).Warn("failed to read line")
		buf.Reset()
		return nil
	}
	buf.WriteString(line)

	sols, err := s.i.QueryContext(ctx, buf.String())
	switch {
	case err == nil:
		break
	case errors.Is(err, engine.ErrInsufficient):
		// Returns without resetting buf.
		buf.WriteRune('\n')
		return nil
	default:
		s.report(err)
		buf.Reset()
		return nil
	}
	buf.Reset()

	return s.interact(sols, keys)
}

// interact prints solutions one by one. The user asks for another solution by typing `;`.
func (s *session) interact(sols *prolog.Solutions, keys io.RuneReader) error {
	defer sols.Close()

	c := 0
	for sols.Next() {
		c++

		if s.halted {
			return errHalt
		}

		a := answer(sols)
		if a == "" {
			_, err := fmt.Fprintf(s.out, "%s\n", s.colors.yes("true."))
			return err
		}

		if _, err := fmt.Fprintf(s.out, "%s ", a); err != nil {
			return err
		}

		r, _, err := keys.ReadRune()
		if err != nil {
			logrus.WithError(err).Warn("failed to read rune")
			break
		}
		if r != ';' {
			r = '.'
		}

		if _, err := fmt.Fprintf(s.out, "%s\n", string(r)); err != nil {
			return err
		}

		if r == '.' {
			return nil
		}
	}

	if err := sols.Err(); err != nil {
		s.report(err)
		return nil
	}

	if c == 0 {
		_, err := fmt.Fprintf(s.out, "%s\n", s.colors.no("false."))
		return err
	}
	return nil
}

// batch runs a program read from r. Every solution of a `?- G` clause is printed.
func (s *session) batch(ctx context.Context, r io.Reader) error {
	err := s.i.Consult(ctx, r, func(sols *prolog.Solutions) error {
		defer sols.Close()

		c := 0
		for sols.Next() {
			c++

			if s.halted {
				return errHalt
			}

			a := answer(sols)
			if a == "" {
				a = "true"
			}
			if _, err := fmt.Fprintf(s.out, "%s\n", s.colors.yes("%s.", a)); err != nil {
				return err
			}
		}

		if err := sols.Err(); err != nil {
			s.report(err)
			return nil
		}

		if c == 0 {
			_, err := fmt.Fprintf(s.out, "%s\n", s.colors.no("false."))
			return err
		}
		return nil
	})
	if errors.Cause(err) == errHalt || s.halted {
		return nil
	}
	return err
}

// consult loads a program. Queries in the program run once without printing.
func (s *session) consult(ctx context.Context, name string, r io.Reader) error {
	if err := s.i.Consult(ctx, r, nil); err != nil {
		return errors.Wrapf(err, "failed to consult %s", name)
	}
	logrus.WithField("file", name).Debug("consulted")
	return nil
}

func (s *session) report(err error) {
	logrus.WithError(err).Debug("command failed")
	_, _ = fmt.Fprintf(s.out, "%s\n", s.colors.fail("error: %v", err))
}

// answer formats the bindings of the current solution in the order of the variables in the query.
func answer(sols *prolog.Solutions) string {
	b := sols.Bindings()
	ls := make([]string, 0, len(b))
	for _, n := range sols.Vars() {
		v, ok := b[n]
		if !ok {
			continue
		}
		ls = append(ls, fmt.Sprintf("%s = %s", n, v))
	}
	return strings.Join(ls, ",\n")
}
