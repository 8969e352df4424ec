package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnify(t *testing.T) {
	x, y := NewVariable("X"), NewVariable("Y")

	t.Run("identical", func(t *testing.T) {
		env := NewEnv().Bind(y, Atom("b"))
		term := Atom("f").Apply(Atom("a"), x)
		e, ok := Unify(term, term, env)
		assert.True(t, ok)
		assert.Equal(t, env, e)
	})

	t.Run("compound", func(t *testing.T) {
		env, ok := Unify(Atom("f").Apply(x, y), Atom("f").Apply(Atom("a"), Atom("b")), nil)
		assert.True(t, ok)
		assert.Equal(t, Atom("a"), env.Resolve(x))
		assert.Equal(t, Atom("b"), env.Resolve(y))
	})

	t.Run("variable on the right", func(t *testing.T) {
		env, ok := Unify(Number(1), x, nil)
		assert.True(t, ok)
		assert.Equal(t, Number(1), env.Resolve(x))
	})

	t.Run("bound variable is never overwritten", func(t *testing.T) {
		env := NewEnv().Bind(x, Atom("a"))
		_, ok := Unify(x, Atom("b"), env)
		assert.False(t, ok)

		e, ok := Unify(x, Atom("a"), env)
		assert.True(t, ok)
		assert.Equal(t, env, e)
	})

	t.Run("bound variable on the other side", func(t *testing.T) {
		env := NewEnv().Bind(y, Atom("a"))
		env, ok := Unify(x, y, env)
		assert.True(t, ok)
		assert.Equal(t, Atom("a"), env.Resolve(x))
	})

	t.Run("variable chain", func(t *testing.T) {
		env, ok := Unify(x, y, nil)
		assert.True(t, ok)
		env, ok = Unify(y, Atom("a"), env)
		assert.True(t, ok)
		assert.Equal(t, Atom("a"), env.Resolve(x))
	})

	t.Run("occurs check", func(t *testing.T) {
		_, ok := Unify(x, Cons(Number(1), x), nil)
		assert.False(t, ok)
	})

	t.Run("occurs check through bindings", func(t *testing.T) {
		env := NewEnv().Bind(y, Atom("f").Apply(x))
		_, ok := Unify(x, Atom("g").Apply(y), env)
		assert.False(t, ok)
	})

	t.Run("functor mismatch", func(t *testing.T) {
		_, ok := Unify(Atom("f").Apply(x), Atom("g").Apply(x), nil)
		assert.False(t, ok)
	})

	t.Run("arity mismatch", func(t *testing.T) {
		_, ok := Unify(Atom("f").Apply(x), Atom("f").Apply(x, y), nil)
		assert.False(t, ok)
	})

	t.Run("atomic mismatch", func(t *testing.T) {
		_, ok := Unify(Atom("a"), Number(1), nil)
		assert.False(t, ok)
	})

	t.Run("failure leaves env as is", func(t *testing.T) {
		before := NewEnv().Bind(NewVariable("Z"), Atom("z"))
		env, ok := Unify(Atom("f").Apply(x, Atom("a"), y), Atom("f").Apply(Atom("b"), Atom("c"), Atom("d")), before)
		assert.False(t, ok)
		assert.Same(t, before, env)
		assert.Equal(t, x, env.Resolve(x))
		assert.Equal(t, y, env.Resolve(y))
	})

	t.Run("anonymous variables", func(t *testing.T) {
		var vm VM
		a, b := vm.NewVariable(), vm.NewVariable()
		env, ok := Unify(a, b, nil)
		assert.True(t, ok)
		assert.Equal(t, b, env.Resolve(a))
	})
}
