package engine

// Atom is a prolog atom.
type Atom string

const (
	atomEmptyList  = Atom("[]")
	atomEmptyBlock = Atom("{}")
	atomDot        = Atom(".")
	atomTrue       = Atom("true")
	atomCut        = Atom("!")
	atomComma      = Atom(",")
	atomSemicolon  = Atom(";")
	atomIf         = Atom(":-")
	atomQuery      = Atom("?-")
	atomBar        = Atom("|")
	atomMinus      = Atom("-")
)

func (Atom) term() {}

func (a Atom) String() string {
	return string(a)
}

// Apply returns a Compound which Functor is the Atom and Args are the arguments. If the arguments are empty,
// then returns itself.
func (a Atom) Apply(args ...Term) Term {
	if len(args) == 0 {
		return a
	}
	return &Compound{
		Functor: a,
		Args:    args,
	}
}
