package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors(t *testing.T) {
	x := NewVariable("X")

	tests := []struct {
		err error
		msg string
	}{
		{err: InstantiationError{Culprit: x}, msg: "X must be bound"},
		{err: TypeError{Type: TypeNumber, Culprit: x}, msg: "X must be bound to a number"},
		{err: TypeError{Type: TypeCallable, Culprit: Number(1)}, msg: "1 is not callable"},
		{err: TypeError{Type: TypeAtom, Culprit: Number(1)}, msg: "1 must be an atom"},
		{err: TypeError{Type: TypeList, Culprit: Atom("a")}, msg: "a must be a list"},
		{err: NotComputableError{Name: "foo", Arity: 2}, msg: "foo/2 is not computable"},
		{err: AlreadyBoundError{Culprit: x, Value: Number(1)}, msg: "X is already bound to 1"},
		{err: DomainError{Domain: DomainOperatorPriority, Culprit: Number(1300)}, msg: "1300 is not a valid operator priority"},
		{err: DomainError{Domain: DomainOperatorSpecifier, Culprit: Atom("abc")}, msg: "abc is not a valid operator specifier"},
		{err: UnexpectedRuneError{rune: '`'}, msg: "unexpected char: `"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.msg)
		})
	}
}
