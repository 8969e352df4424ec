package engine

import (
	"strings"
)

// Compound is a prolog compound.
type Compound struct {
	Functor Atom
	Args    []Term
}

func (*Compound) term() {}

func (c *Compound) String() string {
	var sb strings.Builder
	if c.Functor == atomDot && len(c.Args) == 2 {
		_, _ = sb.WriteString("[")
		var t Term = c
		for {
			l, ok := t.(*Compound)
			if !ok || l.Functor != atomDot || len(l.Args) != 2 {
				break
			}
			if t != Term(c) {
				_, _ = sb.WriteString(", ")
			}
			_, _ = sb.WriteString(l.Args[0].String())
			t = l.Args[1]
		}
		if t != atomEmptyList {
			_, _ = sb.WriteString(" | ")
			_, _ = sb.WriteString(t.String())
		}
		_, _ = sb.WriteString("]")
		return sb.String()
	}

	_, _ = sb.WriteString(c.Functor.String())
	_, _ = sb.WriteString("(")
	for i, a := range c.Args {
		if i > 0 {
			_, _ = sb.WriteString(", ")
		}
		_, _ = sb.WriteString(a.String())
	}
	_, _ = sb.WriteString(")")
	return sb.String()
}

// Cons returns a list consists of a first element car and the rest cdr.
func Cons(car, cdr Term) Term {
	return &Compound{
		Functor: atomDot,
		Args:    []Term{car, cdr},
	}
}

// List returns a list of ts.
func List(ts ...Term) Term {
	return PartialList(atomEmptyList, ts...)
}

// PartialList returns a list of ts which ends with tail.
func PartialList(tail Term, ts ...Term) Term {
	l := tail
	for i := len(ts) - 1; i >= 0; i-- {
		l = Cons(ts[i], l)
	}
	return l
}

// Slice returns the elements of a proper list l under env. It returns false if l is not a proper list.
func Slice(l Term, env *Env) ([]Term, bool) {
	var ts []Term
	for {
		switch t := env.Resolve(l).(type) {
		case Atom:
			return ts, t == atomEmptyList
		case *Compound:
			if t.Functor != atomDot || len(t.Args) != 2 {
				return nil, false
			}
			ts = append(ts, t.Args[0])
			l = t.Args[1]
		default:
			return nil, false
		}
	}
}
