package engine

import (
	"context"
)

// Promise is a delayed execution that results in either a solution, an exhaustion of alternatives, or an error.
// The zero value for Promise is equivalent to Bool(false).
type Promise struct {
	// delayed execution
	delayed func() *Promise

	// final result
	ok   bool
	env  *Env
	more Failure
	err  error
}

// Delay delays an execution of k.
func Delay(k func() *Promise) *Promise {
	return &Promise{delayed: k}
}

// Bool returns a promise that simply returns (ok, nil).
func Bool(ok bool) *Promise {
	return &Promise{ok: ok}
}

// Error returns a promise that simply returns (false, err).
func Error(err error) *Promise {
	return &Promise{err: err}
}

// solution returns a promise that yields env. Invoking more resumes the search for the next solution.
func solution(env *Env, more Failure) *Promise {
	return &Promise{ok: true, env: env, more: more}
}

// Force enforces the delayed execution and returns the result. (i.e. trampoline)
func (p *Promise) Force(ctx context.Context) (bool, error) {
	p = p.force(ctx)
	return p.ok, p.err
}

func (p *Promise) force(ctx context.Context) *Promise {
	for p.delayed != nil {
		select {
		case <-ctx.Done():
			return Error(ctx.Err())
		default:
		}
		p = p.delayed()
	}
	return p
}
