package engine

import (
	"fmt"
	"strconv"
)

// Rule is a clause in the database. A rule without a body is a fact.
type Rule struct {
	Head Term
	Body Term
}

func (r Rule) String() string {
	if r.Body == nil {
		return r.Head.String()
	}
	return fmt.Sprintf("%s :- %s", r.Head, r.Body)
}

func (r Rule) pi() procedureIndicator {
	pi, _, _ := principal(r.Head)
	return pi
}

// AddRule appends a rule to the database.
func (vm *VM) AddRule(head, body Term) {
	vm.rules = append(vm.rules, Rule{Head: head, Body: body})
}

// AddRuleFirst prepends a rule to the database so that it's tried before the others.
func (vm *VM) AddRuleFirst(head, body Term) {
	rules := make([]Rule, 0, len(vm.rules)+1)
	rules = append(rules, Rule{Head: head, Body: body})
	vm.rules = append(rules, vm.rules...)
}

// Rules returns the rules in the database in the order they're tried.
func (vm *VM) Rules() []Rule {
	// Capped so that appending to the live sequence never shows through.
	return vm.rules[:len(vm.rules):len(vm.rules)]
}

// candidates returns the rules for the predicate pi as of now.
func (vm *VM) candidates(pi procedureIndicator) []Rule {
	var rs []Rule
	for _, r := range vm.Rules() {
		if r.pi() == pi {
			rs = append(rs, r)
		}
	}
	return rs
}

// rename returns a copy of r with fresh variables. Named variables get a new instance ID shared by the whole rule
// and every anonymous variable becomes a brand-new one.
func (vm *VM) rename(r Rule) Rule {
	vm.ruleID++
	id := vm.ruleID
	var retrieve func(Term) Term
	retrieve = func(t Term) Term {
		switch t := t.(type) {
		case Variable:
			if t.Anonymous() {
				return vm.NewVariable()
			}
			return Variable{Name: t.Name, ID: id}
		case *Compound:
			c := Compound{
				Functor: t.Functor,
				Args:    make([]Term, len(t.Args)),
			}
			for i, a := range t.Args {
				c.Args[i] = retrieve(a)
			}
			return &c
		default:
			return t
		}
	}
	ret := Rule{Head: retrieve(r.Head)}
	if r.Body != nil {
		ret.Body = retrieve(r.Body)
	}
	return ret
}

// normalize replaces the variables in t with distinct named variables which are not renamed yet. Terms built during
// a derivation may contain variables of different instances with the same name and they have to stay distinct once
// the term is stored as a rule.
func normalize(t Term, env *Env) Term {
	names := map[Variable]Variable{}
	var walk func(Term) Term
	walk = func(t Term) Term {
		switch t := env.Resolve(t).(type) {
		case Variable:
			n, ok := names[t]
			if !ok {
				n = Variable{Name: "_G" + strconv.Itoa(len(names))}
				names[t] = n
			}
			return n
		case *Compound:
			c := Compound{
				Functor: t.Functor,
				Args:    make([]Term, len(t.Args)),
			}
			for i, a := range t.Args {
				c.Args[i] = walk(a)
			}
			return &c
		default:
			return t
		}
	}
	return walk(t)
}
