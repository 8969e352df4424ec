package engine

// Unify unifies t1 and t2 under env and returns env extended with the bindings that make them identical. Existing
// bindings are never overwritten and a binding that would make a cyclic term is rejected.
// On failure, env is returned as is.
func Unify(t1, t2 Term, env *Env) (*Env, bool) {
	if Equal(t1, t2) {
		return env, true
	}
	if v, ok := t1.(Variable); ok {
		return bind(v, t2, env)
	}
	if v, ok := t2.(Variable); ok {
		return bind(v, t1, env)
	}

	c1, ok := t1.(*Compound)
	if !ok {
		return env, false
	}
	c2, ok := t2.(*Compound)
	if !ok || c1.Functor != c2.Functor || len(c1.Args) != len(c2.Args) {
		return env, false
	}
	ret := env
	for i := range c1.Args {
		ret, ok = Unify(c1.Args[i], c2.Args[i], ret)
		if !ok {
			return env, false
		}
	}
	return ret, true
}

func bind(v Variable, value Term, env *Env) (*Env, bool) {
	if b, ok := env.Lookup(v); ok {
		return Unify(b, value, env)
	}
	if w, ok := value.(Variable); ok {
		if b, ok := env.Lookup(w); ok {
			return Unify(v, b, env)
		}
	}
	if dependsOn(value, v, env) {
		return env, false
	}
	return env.Bind(v, value), true
}

// dependsOn checks if t contains v either directly or through the bindings in env.
func dependsOn(t Term, v Variable, env *Env) bool {
	switch t := t.(type) {
	case Variable:
		if t == v {
			return true
		}
		b, ok := env.Lookup(t)
		return ok && dependsOn(b, v, env)
	case *Compound:
		for _, a := range t.Args {
			if dependsOn(a, v, env) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
