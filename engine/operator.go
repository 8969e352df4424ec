package engine

type operatorClass uint8

const (
	operatorClassPrefix operatorClass = iota
	operatorClassPostfix
	operatorClassInfix
	_operatorClassLen
)

// OperatorSpecifier specifies a class and associativity of an operator.
type OperatorSpecifier uint8

const (
	// FX is a non-associative prefix operator.
	FX OperatorSpecifier = iota + 1
	// FY is a right-associative prefix operator.
	FY
	// XF is a non-associative postfix operator.
	XF
	// YF is a left-associative postfix operator.
	YF
	// XFX is a non-associative infix operator.
	XFX
	// XFY is a right-to-left infix operator.
	XFY
	// YFX is a left-to-right infix operator.
	YFX
)

var operatorSpecifiers = [...]struct {
	name  Atom
	class operatorClass
}{
	FX:  {name: "fx", class: operatorClassPrefix},
	FY:  {name: "fy", class: operatorClassPrefix},
	XF:  {name: "xf", class: operatorClassPostfix},
	YF:  {name: "yf", class: operatorClassPostfix},
	XFX: {name: "xfx", class: operatorClassInfix},
	XFY: {name: "xfy", class: operatorClassInfix},
	YFX: {name: "yfx", class: operatorClassInfix},
}

func (s OperatorSpecifier) class() operatorClass {
	return operatorSpecifiers[s].class
}

func (s OperatorSpecifier) String() string {
	return string(operatorSpecifiers[s].name)
}

func operatorSpecifierOf(a Atom) (OperatorSpecifier, bool) {
	for s, o := range operatorSpecifiers {
		if s != 0 && o.name == a {
			return OperatorSpecifier(s), true
		}
	}
	return 0, false
}

// Operator is an operator definition.
type Operator struct {
	Priority  int // 1 ~ 1200
	Specifier OperatorSpecifier
	Name      Atom
}

// Pratt parser's binding powers but in Prolog priority.
func (o Operator) bindingPriorities() (int, int) {
	const max = 1201
	switch o.Specifier {
	case FX:
		return max, o.Priority - 1
	case FY:
		return max, o.Priority
	case XF:
		return o.Priority - 1, max
	case YF:
		return o.Priority, max
	case XFX:
		return o.Priority - 1, o.Priority - 1
	case XFY:
		return o.Priority - 1, o.Priority
	default: // YFX
		return o.Priority, o.Priority - 1
	}
}

// Operators is a set of defined operators. A name can be an operator of each class at the same time.
type Operators struct {
	ops map[Atom][_operatorClassLen]Operator
}

// Define defines an operator. Priority 0 removes the operator of the same class.
func (ops *Operators) Define(priority int, spec OperatorSpecifier, name Atom) {
	if ops.ops == nil {
		ops.ops = map[Atom][_operatorClassLen]Operator{}
	}
	os := ops.ops[name]
	if priority == 0 {
		os[spec.class()] = Operator{}
	} else {
		os[spec.class()] = Operator{
			Priority:  priority,
			Specifier: spec,
			Name:      name,
		}
	}
	if os == ([_operatorClassLen]Operator{}) {
		delete(ops.ops, name)
		return
	}
	ops.ops[name] = os
}

// Defined checks if name is an operator of any class.
func (ops *Operators) Defined(name Atom) bool {
	_, ok := ops.ops[name]
	return ok
}

// Infix returns the infix operator named name.
func (ops *Operators) Infix(name Atom) (Operator, bool) {
	return ops.lookup(name, operatorClassInfix)
}

// Prefix returns the prefix operator named name.
func (ops *Operators) Prefix(name Atom) (Operator, bool) {
	return ops.lookup(name, operatorClassPrefix)
}

// Postfix returns the postfix operator named name.
func (ops *Operators) Postfix(name Atom) (Operator, bool) {
	return ops.lookup(name, operatorClassPostfix)
}

func (ops *Operators) lookup(name Atom, class operatorClass) (Operator, bool) {
	op := ops.ops[name][class]
	return op, op != Operator{}
}

// DefaultOperators is the operator table a new interpreter starts with.
var DefaultOperators = []Operator{
	{Priority: 1200, Specifier: XFX, Name: `:-`},
	{Priority: 1200, Specifier: FX, Name: `:-`},
	{Priority: 1200, Specifier: FX, Name: `?-`},
	{Priority: 1100, Specifier: XFY, Name: `;`},
	{Priority: 1000, Specifier: XFY, Name: `,`},
	{Priority: 700, Specifier: XFX, Name: `=`},
	{Priority: 700, Specifier: XFX, Name: `is`},
	{Priority: 700, Specifier: XFX, Name: `<`},
	{Priority: 700, Specifier: XFX, Name: `>`},
	{Priority: 700, Specifier: XFX, Name: `=<`},
	{Priority: 700, Specifier: XFX, Name: `<=`},
	{Priority: 700, Specifier: XFX, Name: `>=`},
	{Priority: 700, Specifier: XFX, Name: `=:=`},
	{Priority: 700, Specifier: XFX, Name: `=\=`},
	{Priority: 500, Specifier: YFX, Name: `+`},
	{Priority: 500, Specifier: YFX, Name: `-`},
	{Priority: 400, Specifier: YFX, Name: `*`},
	{Priority: 400, Specifier: YFX, Name: `/`},
	{Priority: 200, Specifier: FY, Name: `-`},
}
