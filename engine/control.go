package engine

// Success is a success continuation. It's called once per solution with the bindings and the failure continuation
// which, once invoked, looks for the next solution.
type Success func(env *Env, fail Failure) *Promise

// Failure is a failure continuation. Invoking it backtracks to the next alternative.
// The zero value has no alternatives left.
type Failure struct {
	retry func() *Promise

	// cut is set when the failure was handed out by a cut.
	cut *barrier
}

// barrier is the commitment point of a clause invocation. A cut in the clause body hands out a failure tagged with
// the barrier, and invoking it skips every alternative left in the clause.
type barrier struct {
	outer Failure
}

// Fail backtracks.
func (f Failure) Fail() *Promise {
	if f.cut != nil {
		return f.cut.outer.Fail()
	}
	if f.retry == nil {
		return Bool(false)
	}
	return Delay(f.retry)
}

// Goal is a goal ready to be executed with a pair of continuations.
type Goal func(success Success, fail Failure) *Promise

func succeed(success Success, env *Env, fail Failure) *Promise {
	return Delay(func() *Promise {
		return success(env, fail)
	})
}

func errorGoal(err error) Goal {
	return func(Success, Failure) *Promise {
		return Error(err)
	}
}

// executeQuery turns goal into a Goal under env. cut is the barrier of the clause invocation the goal belongs to.
func (vm *VM) executeQuery(goal Term, env *Env, cut *barrier) Goal {
	if goal == nil {
		return func(success Success, fail Failure) *Promise {
			return succeed(success, env, fail)
		}
	}

	goal = env.Resolve(goal)
	switch g := goal.(type) {
	case Variable:
		return errorGoal(InstantiationError{Culprit: g})
	case Atom:
		switch g {
		case atomTrue:
			return func(success Success, fail Failure) *Promise {
				return succeed(success, env, fail)
			}
		case atomCut:
			return func(success Success, _ Failure) *Promise {
				return succeed(success, env, Failure{cut: cut})
			}
		}
	case *Compound:
		if len(g.Args) == 2 {
			switch g.Functor {
			case atomComma:
				return vm.conjoin(g.Args[0], g.Args[1], env, cut)
			case atomSemicolon:
				return vm.disjoin(g.Args[0], g.Args[1], env, cut)
			}
		}
	default:
		return errorGoal(TypeError{Type: TypeCallable, Culprit: g})
	}

	return vm.call(goal, env)
}

func (vm *VM) conjoin(a, b Term, env *Env, cut *barrier) Goal {
	return func(success Success, fail Failure) *Promise {
		return vm.executeQuery(a, env, cut)(func(env *Env, fail Failure) *Promise {
			return vm.executeQuery(b, env, cut)(success, fail)
		}, fail)
	}
}

func (vm *VM) disjoin(a, b Term, env *Env, cut *barrier) Goal {
	return func(success Success, fail Failure) *Promise {
		// A cut in a means the failure handed to its continuation is tagged and never comes back here.
		return vm.executeQuery(a, env, cut)(success, Failure{retry: func() *Promise {
			return vm.executeQuery(b, env, cut)(success, fail)
		}})
	}
}
