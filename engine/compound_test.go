package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompound_String(t *testing.T) {
	tests := []struct {
		title string
		c     Term
		out   string
	}{
		{title: "compound", c: Atom("f").Apply(Atom("a"), Number(1), NewVariable("X")), out: "f(a, 1, X)"},
		{title: "nested", c: Atom("f").Apply(Atom("g").Apply(Atom("a"))), out: "f(g(a))"},
		{title: "operator", c: Atom("+").Apply(Number(1), Number(2)), out: "+(1, 2)"},
		{title: "list", c: List(Atom("a"), Atom("b")), out: "[a, b]"},
		{title: "partial list", c: PartialList(NewVariable("T"), Atom("a"), Atom("b")), out: "[a, b | T]"},
		{title: "cons", c: Cons(Number(1), Atom("[]")), out: "[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.out, tt.c.String())
		})
	}
}

func TestList(t *testing.T) {
	assert.Equal(t, atomEmptyList, List())
	assert.Equal(t, &Compound{
		Functor: ".",
		Args: []Term{Atom("a"), &Compound{
			Functor: ".",
			Args:    []Term{Atom("b"), Atom("[]")},
		}},
	}, List(Atom("a"), Atom("b")))
}

func TestSlice(t *testing.T) {
	t.Run("proper list", func(t *testing.T) {
		ts, ok := Slice(List(Atom("a"), Atom("b")), nil)
		assert.True(t, ok)
		assert.Equal(t, []Term{Atom("a"), Atom("b")}, ts)
	})

	t.Run("tail bound through env", func(t *testing.T) {
		tail := NewVariable("T")
		env := NewEnv().Bind(tail, List(Atom("c")))
		ts, ok := Slice(PartialList(tail, Atom("a")), env)
		assert.True(t, ok)
		assert.Equal(t, []Term{Atom("a"), Atom("c")}, ts)
	})

	t.Run("partial list", func(t *testing.T) {
		_, ok := Slice(PartialList(NewVariable("T"), Atom("a")), nil)
		assert.False(t, ok)
	})

	t.Run("not a list", func(t *testing.T) {
		_, ok := Slice(Atom("foo"), nil)
		assert.False(t, ok)
	})
}
