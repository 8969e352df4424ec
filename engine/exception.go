package engine

import (
	"errors"
	"fmt"
)

// ErrInsufficient indicates the input ended in the middle of a clause.
var ErrInsufficient = errors.New("insufficient input")

// InstantiationError is raised when an argument is a free variable but it has to be bound.
type InstantiationError struct {
	Culprit Term
}

func (e InstantiationError) Error() string {
	return fmt.Sprintf("%s must be bound", e.Culprit)
}

// ValidType is the correct type for an argument.
type ValidType uint8

// ValidType is one of these values.
const (
	TypeNumber ValidType = iota
	TypeAtom
	TypeCallable
	TypeList
)

func (t ValidType) String() string {
	return [...]string{
		TypeNumber:   "number",
		TypeAtom:     "atom",
		TypeCallable: "callable",
		TypeList:     "list",
	}[t]
}

// TypeError is raised when an argument is of a wrong type.
type TypeError struct {
	Type    ValidType
	Culprit Term
}

func (e TypeError) Error() string {
	switch e.Type {
	case TypeNumber:
		return fmt.Sprintf("%s must be bound to a number", e.Culprit)
	case TypeCallable:
		return fmt.Sprintf("%s is not callable", e.Culprit)
	case TypeAtom:
		return fmt.Sprintf("%s must be an atom", e.Culprit)
	default:
		return fmt.Sprintf("%s must be a %s", e.Culprit, e.Type)
	}
}

// NotComputableError is raised when an arithmetic expression contains an unknown functor.
type NotComputableError struct {
	Name  Atom
	Arity int
}

func (e NotComputableError) Error() string {
	return fmt.Sprintf("%s/%d is not computable", e.Name, e.Arity)
}

// AlreadyBoundError is raised when the left hand side of is/2 already has a value.
type AlreadyBoundError struct {
	Culprit Term
	Value   Term
}

func (e AlreadyBoundError) Error() string {
	return fmt.Sprintf("%s is already bound to %s", e.Culprit, e.Value)
}

// ValidDomain is the domain which the procedure defines.
type ValidDomain uint8

// ValidDomain is one of these values.
const (
	DomainOperatorPriority ValidDomain = iota
	DomainOperatorSpecifier
)

func (d ValidDomain) String() string {
	return [...]string{
		DomainOperatorPriority:  "operator priority",
		DomainOperatorSpecifier: "operator specifier",
	}[d]
}

// DomainError is raised when an argument is of the right type but out of the domain.
type DomainError struct {
	Domain  ValidDomain
	Culprit Term
}

func (e DomainError) Error() string {
	return fmt.Sprintf("%s is not a valid %s", e.Culprit, e.Domain)
}
