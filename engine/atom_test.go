package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtom_Apply(t *testing.T) {
	assert.Equal(t, Atom("foo"), Atom("foo").Apply())
	assert.Equal(t, &Compound{
		Functor: "foo",
		Args:    []Term{Atom("a"), Number(1)},
	}, Atom("foo").Apply(Atom("a"), Number(1)))
}

func TestAtom_String(t *testing.T) {
	assert.Equal(t, "foo", Atom("foo").String())
	assert.Equal(t, "[]", atomEmptyList.String())
}
