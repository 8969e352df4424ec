package engine

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser turns runes into Terms. It consults the operator table of the VM every time it meets an atom so that the
// operators defined by the preceding clauses take effect immediately.
type Parser struct {
	lexer *Lexer
	vm    *VM

	// Vars holds the named variables of the last parsed term in order of their first appearance.
	Vars []ParsedVariable

	buf tokenRingBuffer
}

// ParsedVariable is a set of information regarding a variable in a parsed term.
type ParsedVariable struct {
	Name     string
	Variable Variable
	Count    int
}

// NewParser creates a new parser from the VM and io.RuneReader.
func NewParser(vm *VM, r io.RuneReader) *Parser {
	return &Parser{
		lexer: NewLexer(r),
		vm:    vm,
	}
}

func (p *Parser) next() (Token, error) {
	if p.buf.empty() {
		t, err := p.lexer.Next()
		if err != nil {
			return Token{}, err
		}
		p.buf.put(t)
	}
	return p.buf.get(), nil
}

func (p *Parser) backup() {
	p.buf.backup()
}

func (p *Parser) current() Token {
	return p.buf.current()
}

// unexpected reports the current token. Running out of tokens means the clause continues in the input yet to come.
func (p *Parser) unexpected() error {
	t := p.current()
	if t.Kind == TokenEOS {
		return ErrInsufficient
	}
	return unexpectedTokenError{actual: t}
}

// Term parses a term followed by a full stop. It returns io.EOF if there's no more terms.
func (p *Parser) Term() (Term, error) {
	p.Vars = nil

	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Kind == TokenEOS {
		p.backup()
		return nil, io.EOF
	}
	p.backup()

	term, err := p.term(1200)
	if err != nil {
		return nil, err
	}

	if t, err := p.next(); err != nil || t.Kind != TokenEnd {
		if err != nil {
			return nil, err
		}
		p.backup()
		return nil, p.unexpected()
	}

	return term, nil
}

// More checks if the parser has more tokens to read.
func (p *Parser) More() bool {
	t, err := p.next()
	if err != nil {
		return false
	}
	p.backup()
	return t.Kind != TokenEOS
}

func (p *Parser) term(max int) (Term, error) {
	lhs, prio, err := p.prefix(max)
	if err != nil {
		return nil, err
	}

	for {
		op, ok, err := p.infix()
		if err != nil {
			return nil, err
		}
		if !ok {
			return lhs, nil
		}

		l, r := op.bindingPriorities()
		if op.Priority > max || prio > l {
			p.backup()
			return lhs, nil
		}

		if op.Specifier.class() == operatorClassPostfix {
			lhs, prio = op.Name.Apply(lhs), op.Priority
			continue
		}

		rhs, err := p.term(r)
		if err != nil {
			return nil, err
		}
		lhs, prio = op.Name.Apply(lhs, rhs), op.Priority
	}
}

// prefix parses either a prefix operator with its operand or a primary term. It also returns the priority of the term.
func (p *Parser) prefix(max int) (Term, int, error) {
	t, err := p.next()
	if err != nil {
		return nil, 0, err
	}
	name, ok := nameOf(t)
	if !ok {
		p.backup()
		term, err := p.term0()
		return term, 0, err
	}

	n, err := p.next()
	if err != nil {
		return nil, 0, err
	}
	if n.Kind == TokenNumber && !n.Layout && name == atomMinus {
		f, err := number(n.Val)
		return -f, 0, err
	}

	op, ok := p.vm.operators.Prefix(name)
	if !ok {
		p.backup()
		p.backup()
		term, err := p.term0()
		return term, 0, err
	}

	switch {
	case n.Kind == TokenOpen && !n.Layout:
		// f(...) is always the functional notation.
		p.backup()
		term, err := p.functionalNotation(name)
		return term, 0, err
	case terminates(n), op.Priority > max:
		// The operator stands alone as an atom.
		p.backup()
		return name, 0, nil
	}
	p.backup()

	_, r := op.bindingPriorities()
	operand, err := p.term(r)
	if err != nil {
		return nil, 0, err
	}
	return name.Apply(operand), op.Priority, nil
}

// terminates checks if t can't be the start of a term.
func terminates(t Token) bool {
	switch t.Kind {
	case TokenEOS, TokenEnd, TokenComma, TokenBar, TokenClose, TokenCloseList, TokenCloseCurly:
		return true
	default:
		return false
	}
}

// infix reads the next token as an infix or postfix operator. It consumes nothing when it returns false.
func (p *Parser) infix() (Operator, bool, error) {
	t, err := p.next()
	if err != nil {
		return Operator{}, false, err
	}

	var name Atom
	switch t.Kind {
	case TokenComma:
		name = atomComma
	default:
		var ok bool
		name, ok = nameOf(t)
		if !ok {
			p.backup()
			return Operator{}, false, nil
		}
	}

	if op, ok := p.vm.operators.Infix(name); ok {
		return op, true, nil
	}
	if op, ok := p.vm.operators.Postfix(name); ok {
		return op, true, nil
	}

	p.backup()
	return Operator{}, false, nil
}

func nameOf(t Token) (Atom, bool) {
	switch t.Kind {
	case TokenLetterDigit, TokenGraphic, TokenQuoted, TokenSolo:
		return Atom(t.Val), true
	default:
		return "", false
	}
}

func (p *Parser) term0() (Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	switch t.Kind {
	case TokenNumber:
		return number(t.Val)
	case TokenVariable:
		return p.variable(t.Val), nil
	case TokenOpen:
		return p.openClose()
	case TokenOpenList:
		n, err := p.next()
		if err != nil {
			return nil, err
		}
		if n.Kind == TokenCloseList {
			return p.functionalNotation(atomEmptyList)
		}
		p.backup()
		return p.list()
	case TokenOpenCurly:
		n, err := p.next()
		if err != nil {
			return nil, err
		}
		if n.Kind == TokenCloseCurly {
			return p.functionalNotation(atomEmptyBlock)
		}
		p.backup()
		return p.curlyBracketedTerm()
	}

	if name, ok := nameOf(t); ok {
		return p.functionalNotation(name)
	}

	p.backup()
	return nil, p.unexpected()
}

func (p *Parser) variable(name string) Term {
	if name == "_" {
		return p.vm.NewVariable()
	}
	for i, pv := range p.Vars {
		if pv.Name == name {
			p.Vars[i].Count++
			return pv.Variable
		}
	}
	v := NewVariable(name)
	p.Vars = append(p.Vars, ParsedVariable{Name: name, Variable: v, Count: 1})
	return v
}

func (p *Parser) openClose() (Term, error) {
	t, err := p.term(1200)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenClose); err != nil {
		return nil, err
	}
	return t, nil
}

func (p *Parser) expect(k TokenKind) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t.Kind != k {
		p.backup()
		return p.unexpected()
	}
	return nil
}

func (p *Parser) list() (Term, error) {
	arg, err := p.arg()
	if err != nil {
		return nil, err
	}
	args := []Term{arg}
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case TokenComma:
			arg, err := p.arg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		case TokenBar:
			rest, err := p.arg()
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenCloseList); err != nil {
				return nil, err
			}
			return PartialList(rest, args...), nil
		case TokenCloseList:
			return List(args...), nil
		default:
			p.backup()
			return nil, p.unexpected()
		}
	}
}

func (p *Parser) curlyBracketedTerm() (Term, error) {
	t, err := p.term(1200)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenCloseCurly); err != nil {
		return nil, err
	}
	return atomEmptyBlock.Apply(t), nil
}

func (p *Parser) functionalNotation(functor Atom) (Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Kind != TokenOpen || t.Layout {
		p.backup()
		return functor, nil
	}

	arg, err := p.arg()
	if err != nil {
		return nil, err
	}
	args := []Term{arg}
	for {
		t, err := p.next()
		if err != nil {
			return nil, err
		}
		switch t.Kind {
		case TokenComma:
			arg, err := p.arg()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		case TokenClose:
			return functor.Apply(args...), nil
		default:
			p.backup()
			return nil, p.unexpected()
		}
	}
}

// arg parses an argument of a compound or an element of a list. An operator is allowed as a bare atom here.
func (p *Parser) arg() (Term, error) {
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if name, ok := nameOf(t); ok && p.vm.operators.Defined(name) {
		n, err := p.next()
		if err != nil {
			return nil, err
		}
		p.backup()
		switch n.Kind {
		case TokenComma, TokenClose, TokenBar, TokenCloseList:
			return name, nil
		}
	}
	p.backup()

	return p.term(999)
}

func number(s string) (Number, error) {
	if len(s) > 2 && s[0] == '0' && strings.ContainsRune("xob", rune(s[1])) {
		i, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return 0, err
		}
		return Number(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return Number(f), nil
}

type tokenRingBuffer struct {
	buf        [8]Token
	start, end int
}

func (b *tokenRingBuffer) put(t Token) {
	b.buf[b.end] = t
	b.end++
	b.end %= len(b.buf)
}

func (b *tokenRingBuffer) get() Token {
	t := b.buf[b.start]
	b.start++
	b.start %= len(b.buf)
	return t
}

func (b *tokenRingBuffer) current() Token {
	return b.buf[b.start]
}

func (b *tokenRingBuffer) empty() bool {
	return b.start == b.end
}

func (b *tokenRingBuffer) backup() {
	b.start--
	b.start %= len(b.buf)
	if b.start < 0 {
		b.start += len(b.buf)
	}
}

type unexpectedTokenError struct {
	actual Token
}

func (e unexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token: %s", e.actual)
}
