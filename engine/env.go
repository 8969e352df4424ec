package engine

// Env is an environment frame. It's a persistent singly linked list of bindings and the nil *Env is the empty
// environment. Binding a variable returns a new frame and leaves the receiver untouched, so backtracking is just
// a matter of going back to an older frame.
type Env struct {
	up      *Env
	binding binding
}

type binding struct {
	variable Variable
	value    Term
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return nil
}

// Bind adds a new entry to the environment.
func (e *Env) Bind(v Variable, t Term) *Env {
	return &Env{
		up: e,
		binding: binding{
			variable: v,
			value:    t,
		},
	}
}

// Lookup returns a term that the given variable is bound to.
func (e *Env) Lookup(v Variable) (Term, bool) {
	for env := e; env != nil; env = env.up {
		if env.binding.variable == v {
			return env.binding.value, true
		}
	}
	return nil, false
}

// Resolve follows the variable chain and returns the first non-variable term or the last free variable.
func (e *Env) Resolve(t Term) Term {
	for {
		v, ok := t.(Variable)
		if !ok {
			return t
		}
		ref, ok := e.Lookup(v)
		if !ok {
			return v
		}
		t = ref
	}
}

// Ground substitutes every variable in t with the term it's bound to, recursively, until no bound variable is
// left. It returns false if it reaches a free variable.
func (e *Env) Ground(t Term) (Term, bool) {
	switch t := e.Resolve(t).(type) {
	case Variable:
		return nil, false
	case *Compound:
		c := Compound{
			Functor: t.Functor,
			Args:    make([]Term, len(t.Args)),
		}
		for i, a := range t.Args {
			g, ok := e.Ground(a)
			if !ok {
				return nil, false
			}
			c.Args[i] = g
		}
		return &c, true
	default:
		return t, true
	}
}

// Simplify is like Ground but leaves free variables as they are.
func (e *Env) Simplify(t Term) Term {
	switch t := e.Resolve(t).(type) {
	case *Compound:
		c := Compound{
			Functor: t.Functor,
			Args:    make([]Term, len(t.Args)),
		}
		for i, a := range t.Args {
			c.Args[i] = e.Simplify(a)
		}
		return &c
	default:
		return t
	}
}

// FreeVariables extracts variables in the given terms.
func (e *Env) FreeVariables(ts ...Term) []Variable {
	var fvs []Variable
	for _, t := range ts {
		fvs = e.appendFreeVariables(fvs, t)
	}
	return fvs
}

func (e *Env) appendFreeVariables(fvs []Variable, t Term) []Variable {
	switch t := e.Resolve(t).(type) {
	case Variable:
		for _, v := range fvs {
			if v == t {
				return fvs
			}
		}
		return append(fvs, t)
	case *Compound:
		for _, arg := range t.Args {
			fvs = e.appendFreeVariables(fvs, arg)
		}
	}
	return fvs
}
