package engine

import (
	"fmt"
	"io"
)

// Term is a prolog term. It is one of Atom, Number, Variable, or *Compound.
type Term interface {
	fmt.Stringer
	term()
}

// Equal checks if t1 and t2 are syntactically identical. Variables are compared by identity and no bindings are
// consulted.
func Equal(t1, t2 Term) bool {
	switch t1 := t1.(type) {
	case Atom, Number, Variable:
		return t1 == t2
	case *Compound:
		t2, ok := t2.(*Compound)
		if !ok || t1.Functor != t2.Functor || len(t1.Args) != len(t2.Args) {
			return false
		}
		for i := range t1.Args {
			if !Equal(t1.Args[i], t2.Args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Callable checks if t can be a goal or a rule head.
func Callable(t Term) bool {
	switch t.(type) {
	case Atom, *Compound:
		return true
	default:
		return false
	}
}

// Write outputs the canonical representation of t with the bindings in env substituted.
func Write(w io.Writer, t Term, env *Env) error {
	_, err := fmt.Fprint(w, env.Simplify(t).String())
	return err
}

// procedureIndicator identifies a predicate by name and arity.
type procedureIndicator struct {
	name  Atom
	arity int
}

func (p procedureIndicator) String() string {
	return fmt.Sprintf("%s/%d", p.name, p.arity)
}

func principal(t Term) (procedureIndicator, []Term, bool) {
	switch t := t.(type) {
	case Atom:
		return procedureIndicator{name: t, arity: 0}, nil, true
	case *Compound:
		return procedureIndicator{name: t.Functor, arity: len(t.Args)}, t.Args, true
	default:
		return procedureIndicator{}, nil, false
	}
}
