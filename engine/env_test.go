package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnv_Bind(t *testing.T) {
	x := NewVariable("X")

	var env *Env
	assert.Equal(t, &Env{
		binding: binding{
			variable: x,
			value:    Atom("a"),
		},
	}, env.Bind(x, Atom("a")))
	assert.Nil(t, env)
}

func TestEnv_Lookup(t *testing.T) {
	x, y := NewVariable("X"), NewVariable("Y")
	env := NewEnv().Bind(x, Atom("a")).Bind(y, Atom("b"))

	v, ok := env.Lookup(x)
	assert.True(t, ok)
	assert.Equal(t, Atom("a"), v)

	v, ok = env.Lookup(y)
	assert.True(t, ok)
	assert.Equal(t, Atom("b"), v)

	_, ok = env.Lookup(NewVariable("Z"))
	assert.False(t, ok)

	_, ok = env.Lookup(Variable{Name: "X", ID: 1})
	assert.False(t, ok)
}

func TestEnv_Resolve(t *testing.T) {
	x, y, z := NewVariable("X"), NewVariable("Y"), NewVariable("Z")
	env := NewEnv().Bind(x, y).Bind(y, Atom("a").Apply(z))

	assert.Equal(t, Atom("a").Apply(z), env.Resolve(x))
	assert.Equal(t, z, env.Resolve(z))
	assert.Equal(t, Number(1), env.Resolve(Number(1)))
}

func TestEnv_Ground(t *testing.T) {
	x, y, z := NewVariable("X"), NewVariable("Y"), NewVariable("Z")
	env := NewEnv().Bind(x, Atom("f").Apply(y)).Bind(y, Number(1))

	g, ok := env.Ground(x)
	assert.True(t, ok)
	assert.Equal(t, Atom("f").Apply(Number(1)), g)

	_, ok = env.Ground(Atom("g").Apply(x, z))
	assert.False(t, ok)
}

func TestEnv_Simplify(t *testing.T) {
	x, y, z := NewVariable("X"), NewVariable("Y"), NewVariable("Z")
	env := NewEnv().Bind(x, List(y, z)).Bind(y, Atom("a"))

	assert.Equal(t, List(Atom("a"), z), env.Simplify(x))
	assert.Equal(t, "[a, Z]", env.Simplify(x).String())
}

func TestEnv_FreeVariables(t *testing.T) {
	x, y, z := NewVariable("X"), NewVariable("Y"), NewVariable("Z")
	env := NewEnv().Bind(x, Atom("f").Apply(z, y, z))

	assert.Equal(t, []Variable{z, y}, env.FreeVariables(x))
	assert.Equal(t, []Variable{z, y}, env.FreeVariables(x, y))
	assert.Empty(t, env.FreeVariables(Atom("a")))
}
