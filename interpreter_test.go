package prolog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/cutprolog/prolog/engine"
)

func TestNew(t *testing.T) {
	i := New()

	op, ok := i.Operators().Infix("is")
	assert.True(t, ok)
	assert.Equal(t, engine.Operator{Priority: 700, Specifier: engine.XFX, Name: "is"}, op)

	sol := i.QuerySolution(`X is 1 + 2 * 3, X =:= 7, X >= 7, X =< 7, X <= 7, X > 6, X < 8, X =\= 6.`)
	assert.NoError(t, sol.Err())
	assert.Equal(t, map[string]engine.Term{"X": engine.Number(7)}, sol.Bindings())
}

func TestInterpreter_Exec(t *testing.T) {
	t.Run("facts and rules", func(t *testing.T) {
		i := New()
		assert.NoError(t, i.Exec(`
% family
parent(tom, bob).
parent(tom, liz).
male(tom).
father(X, Y) :- parent(X, Y), male(X).
`))
		assert.Len(t, i.Rules(), 4)
	})

	t.Run("directives", func(t *testing.T) {
		i := New()
		assert.NoError(t, i.Exec(`
:- op(700, xfx, ~=).
?- assertz(seen).
X ~= Y :- X =\= Y.
`))
		sol := i.QuerySolution("seen.")
		assert.NoError(t, sol.Err())

		sol = i.QuerySolution("1 ~= 2.")
		assert.NoError(t, sol.Err())
	})

	t.Run("failed directive", func(t *testing.T) {
		i := New()
		assert.NoError(t, i.Exec(":- fail. foo."))
		assert.Len(t, i.Rules(), 1)
	})

	t.Run("syntax error", func(t *testing.T) {
		i := New()
		err := i.Exec("foo. bar(.")
		assert.Error(t, err)
		assert.Len(t, i.Rules(), 1)
	})

	t.Run("insufficient", func(t *testing.T) {
		i := New()
		err := i.Exec("foo :- bar")
		assert.True(t, errors.Is(err, engine.ErrInsufficient))
	})

	t.Run("directive error", func(t *testing.T) {
		i := New()
		err := i.Exec(":- X is foo.")
		var nc engine.NotComputableError
		assert.True(t, errors.As(err, &nc))
		assert.Equal(t, engine.NotComputableError{Name: "foo", Arity: 0}, nc)
	})

	t.Run("invalid clause", func(t *testing.T) {
		i := New()
		err := i.Exec("1.")
		assert.Equal(t, engine.TypeError{Type: engine.TypeCallable, Culprit: engine.Number(1)}, errors.Cause(err))
	})
}

func TestInterpreter_Query(t *testing.T) {
	i := New()
	assert.NoError(t, i.Exec(`
p(1).
p(2).
q :- p(X), !, X > 1.
father(X, Y) :- parent(X, Y), male(X).
parent(tom, bob).
parent(tom, liz).
male(tom).
`))

	t.Run("cut", func(t *testing.T) {
		sols, err := i.Query("q.")
		assert.NoError(t, err)
		defer func() {
			assert.NoError(t, sols.Close())
		}()
		assert.False(t, sols.Next())
		assert.NoError(t, sols.Err())
	})

	t.Run("solutions in order", func(t *testing.T) {
		sols, err := i.Query("father(tom, Y).")
		assert.NoError(t, err)
		defer func() {
			assert.NoError(t, sols.Close())
		}()

		var ys []engine.Term
		for sols.Next() {
			ys = append(ys, sols.Bindings()["Y"])
		}
		assert.NoError(t, sols.Err())
		assert.Equal(t, []engine.Term{engine.Atom("bob"), engine.Atom("liz")}, ys)
	})

	t.Run("no bindings", func(t *testing.T) {
		sols, err := i.Query("father(tom, bob).")
		assert.NoError(t, err)
		assert.True(t, sols.Next())
		assert.Empty(t, sols.Bindings())
	})

	t.Run("unbound variables are not bindings", func(t *testing.T) {
		sols, err := i.Query("X = Y.")
		assert.NoError(t, err)
		assert.True(t, sols.Next())
		b := sols.Bindings()
		assert.Len(t, b, 1)
	})

	t.Run("query prefix", func(t *testing.T) {
		sols, err := i.Query("?- p(X).")
		assert.NoError(t, err)
		assert.True(t, sols.Next())
		assert.Equal(t, map[string]engine.Term{"X": engine.Number(1)}, sols.Bindings())
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := i.Query("p(X")
		assert.True(t, errors.Is(err, engine.ErrInsufficient))
	})

	t.Run("runtime error", func(t *testing.T) {
		sols, err := i.Query("X is Y.")
		assert.NoError(t, err)
		assert.False(t, sols.Next())
		assert.Equal(t, engine.InstantiationError{Culprit: engine.NewVariable("Y")}, sols.Err())
	})

	t.Run("canceled", func(t *testing.T) {
		assert.NoError(t, i.Exec("loop :- loop."))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sols, err := i.QueryContext(ctx, "loop.")
		assert.NoError(t, err)
		assert.False(t, sols.Next())
		assert.Equal(t, context.Canceled, sols.Err())
	})
}

func TestInterpreter_QuerySolution(t *testing.T) {
	i := New()
	assert.NoError(t, i.Exec("p(1). p(2)."))

	t.Run("ok", func(t *testing.T) {
		sol := i.QuerySolution("p(X).")
		assert.NoError(t, sol.Err())

		var s struct {
			X int
		}
		assert.NoError(t, sol.Scan(&s))
		assert.Equal(t, 1, s.X)
	})

	t.Run("no solutions", func(t *testing.T) {
		sol := i.QuerySolution("p(3).")
		assert.Equal(t, ErrNoSolutions, sol.Err())
		assert.Equal(t, ErrNoSolutions, sol.Scan(&struct{}{}))
		assert.Nil(t, sol.Bindings())
	})

	t.Run("error", func(t *testing.T) {
		sol := i.QuerySolution("X is foo.")
		assert.Equal(t, engine.NotComputableError{Name: "foo", Arity: 0}, sol.Err())
	})

	t.Run("parse error", func(t *testing.T) {
		sol := i.QuerySolution("p(.")
		assert.Error(t, sol.Err())
	})
}

func TestInterpreter_Consult(t *testing.T) {
	t.Run("queries", func(t *testing.T) {
		i := New()

		var answers []map[string]engine.Term
		assert.NoError(t, i.Consult(context.Background(), strings.NewReader(`
p(1).
p(2).
?- p(X).
:- assertz(p(3)).
?- p(3).
`), func(sols *Solutions) error {
			defer sols.Close()
			for sols.Next() {
				answers = append(answers, sols.Bindings())
			}
			return sols.Err()
		}))
		assert.Equal(t, []map[string]engine.Term{
			{"X": engine.Number(1)},
			{"X": engine.Number(2)},
			{},
		}, answers)
	})

	t.Run("query error", func(t *testing.T) {
		i := New()

		err := i.Consult(context.Background(), strings.NewReader(`?- X is foo.`), func(sols *Solutions) error {
			defer sols.Close()
			for sols.Next() {
			}
			return sols.Err()
		})
		assert.Equal(t, engine.NotComputableError{Name: "foo", Arity: 0}, errors.Cause(err))
	})

	t.Run("without query", func(t *testing.T) {
		i := New()

		assert.NoError(t, i.Consult(context.Background(), strings.NewReader(`p. ?- p.`), nil))
		assert.NoError(t, i.QuerySolution(`p.`).Err())
	})
}

func TestInterpreter_trace(t *testing.T) {
	i := New()
	assert.NoError(t, i.Exec("p(1)."))

	var calls []string
	i.OnCall = func(goal engine.Term, _ *engine.Env) {
		calls = append(calls, goal.String())
	}

	sol := i.QuerySolution("p(X), X = 1.")
	assert.NoError(t, sol.Err())
	assert.Equal(t, []string{"p(X)"}, calls)
}

func ExampleInterpreter_Query() {
	p := New()
	_ = p.Exec(`
append([], L, L).
append([H|T], L, [H|R]) :- append(T, L, R).
`)
	sols, _ := p.Query(`append(X, Y, [1, 2]).`)
	defer sols.Close()
	for sols.Next() {
		b := sols.Bindings()
		fmt.Printf("X = %s, Y = %s\n", b["X"], b["Y"])
	}

	// Output:
	// X = [], Y = [1, 2]
	// X = [1], Y = [2]
	// X = [1, 2], Y = []
}
