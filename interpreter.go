package prolog

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/cutprolog/prolog/engine"
)

// Interpreter is a Prolog interpreter. The zero value is a valid interpreter without any predicates/operators defined.
type Interpreter struct {
	engine.VM
}

// New creates a new Prolog interpreter with predefined predicates/operators.
func New() *Interpreter {
	var i Interpreter

	for _, op := range engine.DefaultOperators {
		i.Operators().Define(op.Priority, op.Specifier, op.Name)
	}

	// Control constructs
	i.Register0("true", engine.True)
	i.Register0("fail", engine.Fail)
	i.Register0("false", engine.Fail)

	// Term unification
	i.Register2("=", engine.UnifyTerms)

	// Arithmetic evaluation
	fs := engine.DefaultEvaluableFunctors
	i.Register2("is", fs.Is)

	// Arithmetic comparison
	i.Register2("=:=", fs.Equal)
	i.Register2(`=\=`, fs.NotEqual)
	i.Register2("<", fs.LessThan)
	i.Register2(">", fs.GreaterThan)
	i.Register2("=<", fs.LessThanOrEqual)
	i.Register2("<=", fs.LessThanOrEqual)
	i.Register2(">=", fs.GreaterThanOrEqual)

	// Clause creation
	i.Register1("asserta", engine.Asserta)
	i.Register1("assertz", engine.Assertz)

	// Term input
	i.Register3("op", engine.Op)

	return &i
}

// Exec executes a prolog program.
func (i *Interpreter) Exec(query string) error {
	return i.ExecContext(context.Background(), query)
}

// ExecContext executes a prolog program with context. A clause in the form of `:- G` or `?- G` runs G once, and
// every other clause is added to the database.
func (i *Interpreter) ExecContext(ctx context.Context, query string) error {
	return i.Consult(ctx, strings.NewReader(query), nil)
}

// Consult reads a prolog program from r clause by clause. If query is not nil, it gets *Solutions for every clause in
// the form of `?- G` instead of running G once. Closing the *Solutions is up to query.
func (i *Interpreter) Consult(ctx context.Context, r io.Reader, query func(*Solutions) error) error {
	p := engine.NewParser(&i.VM, bufio.NewReader(r))
	for n := 1; ; n++ {
		t, err := p.Term()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "clause %d", n)
		}

		if c, ok := t.(*engine.Compound); ok && query != nil && c.Functor == "?-" && len(c.Args) == 1 {
			if err := query(&Solutions{vars: p.Vars, answers: i.Solve(ctx, c.Args[0])}); err != nil {
				return errors.Wrapf(err, "query %s", c.Args[0])
			}
			continue
		}

		if g, ok := directive(t); ok {
			if err := i.Directive(ctx, g); err != nil {
				return errors.Wrapf(err, "directive %s", g)
			}
			continue
		}

		if err := i.Assert(t); err != nil {
			return errors.Wrapf(err, "clause %d", n)
		}
	}
}

func directive(t engine.Term) (engine.Term, bool) {
	c, ok := t.(*engine.Compound)
	if !ok || len(c.Args) != 1 {
		return nil, false
	}
	switch c.Functor {
	case ":-", "?-":
		return c.Args[0], true
	default:
		return nil, false
	}
}

// Query executes a prolog query and returns *Solutions.
func (i *Interpreter) Query(query string) (*Solutions, error) {
	return i.QueryContext(context.Background(), query)
}

// QueryContext executes a prolog query and returns *Solutions with context.
func (i *Interpreter) QueryContext(ctx context.Context, query string) (*Solutions, error) {
	p := engine.NewParser(&i.VM, strings.NewReader(query))
	t, err := p.Term()
	if err != nil {
		return nil, errors.Wrap(err, "query")
	}
	if g, ok := directive(t); ok {
		t = g
	}

	logrus.WithField("vars", len(p.Vars)).Debug("query")
	return &Solutions{
		vars:    p.Vars,
		answers: i.Solve(ctx, t),
	}, nil
}

// ErrNoSolutions indicates there's no solutions for the query.
var ErrNoSolutions = errors.New("no solutions")

// QuerySolution executes a Prolog query for the first solution.
func (i *Interpreter) QuerySolution(query string) *Solution {
	return i.QuerySolutionContext(context.Background(), query)
}

// QuerySolutionContext executes a Prolog query with context.
func (i *Interpreter) QuerySolutionContext(ctx context.Context, query string) *Solution {
	sols, err := i.QueryContext(ctx, query)
	if err != nil {
		return &Solution{err: err}
	}

	if !sols.Next() {
		if err := sols.Err(); err != nil {
			return &Solution{err: err}
		}
		return &Solution{err: ErrNoSolutions}
	}

	return &Solution{sols: sols, err: sols.Close()}
}
