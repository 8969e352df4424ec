package engine

// EvaluableFunctors is a set of unary/binary functions.
type EvaluableFunctors struct {
	Unary  map[Atom]func(x Number) Number
	Binary map[Atom]func(x, y Number) Number
}

// DefaultEvaluableFunctors is a EvaluableFunctors with builtin functions.
var DefaultEvaluableFunctors = EvaluableFunctors{
	Unary: map[Atom]func(Number) Number{
		`-`: func(x Number) Number { return -x },
	},
	Binary: map[Atom]func(Number, Number) Number{
		`+`: func(x, y Number) Number { return x + y },
		`-`: func(x, y Number) Number { return x - y },
		`*`: func(x, y Number) Number { return x * y },
		`/`: func(x, y Number) Number { return x / y },
	},
}

// Evaluate reduces expression to a number under env. The shape of the term decides the order of operations.
func (fs EvaluableFunctors) Evaluate(expression Term, env *Env) (Number, error) {
	switch t := expression.(type) {
	case Number:
		return t, nil
	case Variable:
		switch r := env.Resolve(t).(type) {
		case Variable:
			return 0, InstantiationError{Culprit: t}
		case Number:
			return r, nil
		default:
			return 0, TypeError{Type: TypeNumber, Culprit: t}
		}
	case Atom:
		return 0, NotComputableError{Name: t, Arity: 0}
	case *Compound:
		switch len(t.Args) {
		case 1:
			if f, ok := fs.Unary[t.Functor]; ok {
				x, err := fs.Evaluate(t.Args[0], env)
				if err != nil {
					return 0, err
				}
				return f(x), nil
			}
		case 2:
			if f, ok := fs.Binary[t.Functor]; ok {
				x, err := fs.Evaluate(t.Args[0], env)
				if err != nil {
					return 0, err
				}
				y, err := fs.Evaluate(t.Args[1], env)
				if err != nil {
					return 0, err
				}
				return f(x, y), nil
			}
		}
		return 0, NotComputableError{Name: t.Functor, Arity: len(t.Args)}
	default:
		return 0, TypeError{Type: TypeNumber, Culprit: t}
	}
}
