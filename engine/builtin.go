package engine

// True always succeeds.
func True(_ *VM, env *Env) (*Env, bool, error) {
	return env, true, nil
}

// Fail always fails.
func Fail(_ *VM, env *Env) (*Env, bool, error) {
	return env, false, nil
}

// UnifyTerms unifies t1 and t2.
func UnifyTerms(_ *VM, t1, t2 Term, env *Env) (*Env, bool, error) {
	env, ok := Unify(t1, t2, env)
	return env, ok, nil
}

// Is evaluates expression and binds the result to result.
func (fs EvaluableFunctors) Is(_ *VM, result, expression Term, env *Env) (*Env, bool, error) {
	v, ok := env.Resolve(result).(Variable)
	if !ok {
		return env, false, AlreadyBoundError{Culprit: result, Value: env.Simplify(result)}
	}
	n, err := fs.Evaluate(expression, env)
	if err != nil {
		return env, false, err
	}
	return env.Bind(v, n), true, nil
}

// Equal succeeds iff lhs equals to rhs.
func (fs EvaluableFunctors) Equal(_ *VM, lhs, rhs Term, env *Env) (*Env, bool, error) {
	return fs.compare(lhs, rhs, func(x, y Number) bool {
		return x == y
	}, env)
}

// NotEqual succeeds iff lhs doesn't equal to rhs.
func (fs EvaluableFunctors) NotEqual(_ *VM, lhs, rhs Term, env *Env) (*Env, bool, error) {
	return fs.compare(lhs, rhs, func(x, y Number) bool {
		return x != y
	}, env)
}

// LessThan succeeds iff lhs is less than rhs.
func (fs EvaluableFunctors) LessThan(_ *VM, lhs, rhs Term, env *Env) (*Env, bool, error) {
	return fs.compare(lhs, rhs, func(x, y Number) bool {
		return x < y
	}, env)
}

// GreaterThan succeeds iff lhs is greater than rhs.
func (fs EvaluableFunctors) GreaterThan(_ *VM, lhs, rhs Term, env *Env) (*Env, bool, error) {
	return fs.compare(lhs, rhs, func(x, y Number) bool {
		return x > y
	}, env)
}

// LessThanOrEqual succeeds iff lhs is less than or equal to rhs.
func (fs EvaluableFunctors) LessThanOrEqual(_ *VM, lhs, rhs Term, env *Env) (*Env, bool, error) {
	return fs.compare(lhs, rhs, func(x, y Number) bool {
		return x <= y
	}, env)
}

// GreaterThanOrEqual succeeds iff lhs is greater than or equal to rhs.
func (fs EvaluableFunctors) GreaterThanOrEqual(_ *VM, lhs, rhs Term, env *Env) (*Env, bool, error) {
	return fs.compare(lhs, rhs, func(x, y Number) bool {
		return x >= y
	}, env)
}

func (fs EvaluableFunctors) compare(lhs, rhs Term, p func(Number, Number) bool, env *Env) (*Env, bool, error) {
	x, err := fs.Evaluate(lhs, env)
	if err != nil {
		return env, false, err
	}

	y, err := fs.Evaluate(rhs, env)
	if err != nil {
		return env, false, err
	}

	return env, p(x, y), nil
}

// Op defines operator with priority and specifier, or removes when priority is 0. operator can be a list of atoms.
func Op(vm *VM, priority, specifier, operator Term, env *Env) (*Env, bool, error) {
	var p int
	switch pr := env.Resolve(priority).(type) {
	case Variable:
		return env, false, InstantiationError{Culprit: priority}
	case Number:
		if pr < 0 || pr > 1200 || pr != Number(int(pr)) {
			return env, false, DomainError{Domain: DomainOperatorPriority, Culprit: pr}
		}
		p = int(pr)
	default:
		return env, false, DomainError{Domain: DomainOperatorPriority, Culprit: env.Simplify(pr)}
	}

	var s OperatorSpecifier
	switch sp := env.Resolve(specifier).(type) {
	case Variable:
		return env, false, InstantiationError{Culprit: specifier}
	case Atom:
		var ok bool
		s, ok = operatorSpecifierOf(sp)
		if !ok {
			return env, false, DomainError{Domain: DomainOperatorSpecifier, Culprit: sp}
		}
	default:
		return env, false, DomainError{Domain: DomainOperatorSpecifier, Culprit: env.Simplify(sp)}
	}

	names, err := operatorNames(operator, env)
	if err != nil {
		return env, false, err
	}
	for _, n := range names {
		vm.operators.Define(p, s, n)
	}
	return env, true, nil
}

func operatorNames(operator Term, env *Env) ([]Atom, error) {
	switch o := env.Resolve(operator).(type) {
	case Variable:
		return nil, InstantiationError{Culprit: operator}
	case Atom:
		if o == atomEmptyList {
			return nil, nil
		}
		return []Atom{o}, nil
	case *Compound:
		elems, ok := Slice(o, env)
		if !ok {
			return nil, TypeError{Type: TypeList, Culprit: env.Simplify(o)}
		}
		names := make([]Atom, len(elems))
		for i, e := range elems {
			switch e := env.Resolve(e).(type) {
			case Variable:
				return nil, InstantiationError{Culprit: e}
			case Atom:
				names[i] = e
			default:
				return nil, TypeError{Type: TypeAtom, Culprit: env.Simplify(e)}
			}
		}
		return names, nil
	default:
		return nil, TypeError{Type: TypeAtom, Culprit: o}
	}
}

// Assertz appends t to the database.
func Assertz(vm *VM, t Term, env *Env) (*Env, bool, error) {
	if err := vm.Assert(normalize(t, env)); err != nil {
		return env, false, err
	}
	return env, true, nil
}

// Asserta prepends t to the database.
func Asserta(vm *VM, t Term, env *Env) (*Env, bool, error) {
	if err := vm.AssertFirst(normalize(t, env)); err != nil {
		return env, false, err
	}
	return env, true, nil
}
