package engine

import (
	"context"

	"github.com/sirupsen/logrus"
)

// VM is the core of a Prolog interpreter. The zero value for VM is a valid VM without any builtin predicates nor
// operators.
type VM struct {
	// OnCall is a hook which gets triggered when a user defined predicate is called.
	OnCall func(goal Term, env *Env)

	// OnExit is a hook which gets triggered when a user defined predicate succeeds.
	OnExit func(goal Term, env *Env)

	// OnRedo is a hook which gets triggered when a user defined predicate is asked for another solution.
	OnRedo func(goal Term, env *Env)

	// OnFail is a hook which gets triggered when a user defined predicate runs out of solutions.
	OnFail func(goal Term, env *Env)

	operators  Operators
	procedures map[procedureIndicator]procedure
	rules      []Rule

	ruleID, anonID int64
}

// Operators returns the operator table shared with the parser.
func (vm *VM) Operators() *Operators {
	return &vm.operators
}

type procedure interface {
	call(vm *VM, args []Term, env *Env) (*Env, bool, error)
}

// Predicate0 is a deterministic native predicate of arity 0.
type Predicate0 func(*VM, *Env) (*Env, bool, error)

func (p Predicate0) call(vm *VM, _ []Term, env *Env) (*Env, bool, error) {
	return p(vm, env)
}

// Predicate1 is a deterministic native predicate of arity 1.
type Predicate1 func(*VM, Term, *Env) (*Env, bool, error)

func (p Predicate1) call(vm *VM, args []Term, env *Env) (*Env, bool, error) {
	return p(vm, args[0], env)
}

// Predicate2 is a deterministic native predicate of arity 2.
type Predicate2 func(*VM, Term, Term, *Env) (*Env, bool, error)

func (p Predicate2) call(vm *VM, args []Term, env *Env) (*Env, bool, error) {
	return p(vm, args[0], args[1], env)
}

// Predicate3 is a deterministic native predicate of arity 3.
type Predicate3 func(*VM, Term, Term, Term, *Env) (*Env, bool, error)

func (p Predicate3) call(vm *VM, args []Term, env *Env) (*Env, bool, error) {
	return p(vm, args[0], args[1], args[2], env)
}

// Register0 registers a predicate of arity 0.
func (vm *VM) Register0(name string, p Predicate0) {
	vm.register(procedureIndicator{name: Atom(name), arity: 0}, p)
}

// Register1 registers a predicate of arity 1.
func (vm *VM) Register1(name string, p Predicate1) {
	vm.register(procedureIndicator{name: Atom(name), arity: 1}, p)
}

// Register2 registers a predicate of arity 2.
func (vm *VM) Register2(name string, p Predicate2) {
	vm.register(procedureIndicator{name: Atom(name), arity: 2}, p)
}

// Register3 registers a predicate of arity 3.
func (vm *VM) Register3(name string, p Predicate3) {
	vm.register(procedureIndicator{name: Atom(name), arity: 3}, p)
}

func (vm *VM) register(pi procedureIndicator, p procedure) {
	if vm.procedures == nil {
		vm.procedures = map[procedureIndicator]procedure{}
	}
	vm.procedures[pi] = p
}

func (vm *VM) call(goal Term, env *Env) Goal {
	pi, args, ok := principal(goal)
	if !ok {
		return errorGoal(TypeError{Type: TypeCallable, Culprit: goal})
	}

	if p, ok := vm.procedures[pi]; ok {
		return func(success Success, fail Failure) *Promise {
			env, ok, err := p.call(vm, args, env)
			if err != nil {
				return Error(err)
			}
			if !ok {
				return fail.Fail()
			}
			return succeed(success, env, fail)
		}
	}

	return vm.searchRules(goal, pi, env)
}

// searchRules tries the rules for pi one by one in the database order.
func (vm *VM) searchRules(goal Term, pi procedureIndicator, env *Env) Goal {
	return func(success Success, fail Failure) *Promise {
		rules := vm.candidates(pi)
		if len(rules) == 0 {
			logrus.WithField("procedure", pi).Warn("unknown procedure")
		}

		vm.trace(vm.OnCall, goal, env)
		success, fail = vm.ports(goal, success, fail)

		cut := &barrier{outer: fail}
		var try func(int) *Promise
		try = func(i int) *Promise {
			if i == len(rules) {
				return fail.Fail()
			}
			next := Failure{retry: func() *Promise {
				return try(i + 1)
			}}
			r := vm.rename(rules[i])
			env, ok := Unify(goal, r.Head, env)
			if !ok {
				return next.Fail()
			}
			return vm.executeQuery(r.Body, env, cut)(success, next)
		}
		return try(0)
	}
}

// ports wraps the continuations of a call so that the exit, redo, and fail hooks get triggered.
func (vm *VM) ports(goal Term, success Success, fail Failure) (Success, Failure) {
	if vm.OnExit == nil && vm.OnRedo == nil && vm.OnFail == nil {
		return success, fail
	}
	return func(env *Env, more Failure) *Promise {
			vm.trace(vm.OnExit, goal, env)
			return success(env, Failure{retry: func() *Promise {
				vm.trace(vm.OnRedo, goal, env)
				return more.Fail()
			}})
		}, Failure{retry: func() *Promise {
			vm.trace(vm.OnFail, goal, nil)
			return fail.Fail()
		}}
}

func (vm *VM) trace(hook func(Term, *Env), goal Term, env *Env) {
	if hook == nil {
		return
	}
	hook(goal, env)
}

// Assert registers t as a rule if it's in the form of Head :- Body, or as a fact otherwise.
func (vm *VM) Assert(t Term) error {
	head, body, err := clauseOf(t)
	if err != nil {
		return err
	}
	logrus.WithField("clause", t).Debug("assert")
	vm.AddRule(head, body)
	return nil
}

// AssertFirst is like Assert but the rule is tried before the existing ones.
func (vm *VM) AssertFirst(t Term) error {
	head, body, err := clauseOf(t)
	if err != nil {
		return err
	}
	logrus.WithField("clause", t).Debug("assert first")
	vm.AddRuleFirst(head, body)
	return nil
}

func clauseOf(t Term) (Term, Term, error) {
	var head, body Term = t, nil
	if c, ok := t.(*Compound); ok && c.Functor == atomIf && len(c.Args) == 2 {
		head, body = c.Args[0], c.Args[1]
	}
	switch head.(type) {
	case Variable:
		return nil, nil, InstantiationError{Culprit: head}
	case Atom, *Compound:
		return head, body, nil
	default:
		return nil, nil, TypeError{Type: TypeCallable, Culprit: head}
	}
}

// Directive executes goal once and discards the result. A failed directive is not an error.
func (vm *VM) Directive(ctx context.Context, goal Term) error {
	a := vm.Solve(ctx, goal)
	defer func() {
		_ = a.Close()
	}()
	if !a.Next() {
		if err := a.Err(); err != nil {
			return err
		}
		logrus.WithField("goal", goal).Warn("directive failed")
	}
	return nil
}

// Solve executes query and returns its solutions. The solutions are computed lazily, one for each call of Next.
func (vm *VM) Solve(ctx context.Context, query Term) *Answers {
	logrus.WithField("query", query).Debug("solve")
	cut := &barrier{}
	return &Answers{
		ctx: ctx,
		next: Delay(func() *Promise {
			return vm.executeQuery(query, NewEnv(), cut)(solution, Failure{})
		}),
	}
}

// Answers is an iterator over the solutions of a query.
type Answers struct {
	ctx  context.Context
	next *Promise
	env  *Env
	err  error
}

// Next searches for the next solution. It returns false if there are no more solutions or if it encounters an error.
func (a *Answers) Next() bool {
	if a.next == nil {
		return false
	}
	p := a.next.force(a.ctx)
	a.next = nil
	switch {
	case p.err != nil:
		a.err = p.err
		return false
	case p.ok:
		a.env = p.env
		a.next = Delay(p.more.Fail)
		return true
	default:
		return false
	}
}

// Env returns the bindings of the current solution.
func (a *Answers) Env() *Env {
	return a.env
}

// Err returns the error if exists.
func (a *Answers) Err() error {
	return a.err
}

// Close terminates the search for other solutions.
func (a *Answers) Close() error {
	a.next = nil
	return nil
}
