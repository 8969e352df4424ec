package engine

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Lexer turns runes into tokens.
type Lexer struct {
	input  io.RuneReader
	buf    []rune
	tokens []Token
	layout bool
}

// NewLexer creates a lexer which reads from input.
func NewLexer(input io.RuneReader) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	l.layout = false
	state := l.init
	for state != nil && len(l.tokens) == 0 {
		r, err := l.next()
		if err != nil {
			return Token{}, err
		}
		state, err = state(r)
		if err != nil {
			return Token{}, err
		}
	}

	var t Token
	t, l.tokens = l.tokens[0], l.tokens[1:]
	return t, nil
}

const etx = 0x2

func (l *Lexer) next() (rune, error) {
	if n := len(l.buf); n > 0 {
		r := l.buf[n-1]
		l.buf = l.buf[:n-1]
		return r, nil
	}
	r, _, err := l.input.ReadRune()
	switch err {
	case nil:
		return r, nil
	case io.EOF:
		return etx, nil
	default:
		return 0, err
	}
}

func (l *Lexer) backup(r rune) {
	l.buf = append(l.buf, r)
}

func (l *Lexer) emit(k TokenKind, val string) {
	l.tokens = append(l.tokens, Token{Kind: k, Val: val, Layout: l.layout})
}

// Token is a smallest meaningful unit of prolog program.
type Token struct {
	Kind TokenKind
	Val  string

	// Layout is true if the token is preceded by white spaces or comments.
	Layout bool
}

func (t Token) String() string {
	return fmt.Sprintf("<%s %s>", t.Kind, t.Val)
}

// TokenKind is a type of Token.
type TokenKind byte

const (
	// TokenEOS represents an end of token stream.
	TokenEOS TokenKind = iota

	// TokenEnd represents the full stop at the end of a clause.
	TokenEnd

	// TokenVariable represents a variable token.
	TokenVariable

	// TokenNumber represents a number token.
	TokenNumber

	// TokenLetterDigit represents an atom made of alphanumerics.
	TokenLetterDigit

	// TokenQuoted represents a quoted atom. Val holds the unquoted text.
	TokenQuoted

	// TokenGraphic represents an atom made of graphic chars.
	TokenGraphic

	// TokenSolo represents a solo char atom, either ! or ;.
	TokenSolo

	// TokenComma represents a comma.
	TokenComma

	// TokenBar represents a bar.
	TokenBar

	// TokenOpen represents an open parenthesis.
	TokenOpen

	// TokenClose represents a close parenthesis.
	TokenClose

	// TokenOpenList represents an open bracket.
	TokenOpenList

	// TokenCloseList represents a close bracket.
	TokenCloseList

	// TokenOpenCurly represents an open brace.
	TokenOpenCurly

	// TokenCloseCurly represents a close brace.
	TokenCloseCurly

	tokenKindLen
)

func (k TokenKind) String() string {
	return [tokenKindLen]string{
		TokenEOS:         "eos",
		TokenEnd:         "end",
		TokenVariable:    "variable",
		TokenNumber:      "number",
		TokenLetterDigit: "letter digit",
		TokenQuoted:      "quoted",
		TokenGraphic:     "graphic",
		TokenSolo:        "solo",
		TokenComma:       "comma",
		TokenBar:         "bar",
		TokenOpen:        "open",
		TokenClose:       "close",
		TokenOpenList:    "open list",
		TokenCloseList:   "close list",
		TokenOpenCurly:   "open curly",
		TokenCloseCurly:  "close curly",
	}[k]
}

type lexState func(rune) (lexState, error)

func (l *Lexer) init(r rune) (lexState, error) {
	switch {
	case r == etx:
		l.emit(TokenEOS, "")
		return nil, nil
	case unicode.IsSpace(r):
		l.layout = true
		return l.init, nil
	case r == '%':
		l.layout = true
		return l.singleLineComment, nil
	case r == '/':
		return l.slash, nil
	case r == '(':
		l.emit(TokenOpen, "(")
		return nil, nil
	case r == ')':
		l.emit(TokenClose, ")")
		return nil, nil
	case r == '[':
		l.emit(TokenOpenList, "[")
		return nil, nil
	case r == ']':
		l.emit(TokenCloseList, "]")
		return nil, nil
	case r == '{':
		l.emit(TokenOpenCurly, "{")
		return nil, nil
	case r == '}':
		l.emit(TokenCloseCurly, "}")
		return nil, nil
	case r == ',':
		l.emit(TokenComma, ",")
		return nil, nil
	case r == '|':
		l.emit(TokenBar, "|")
		return nil, nil
	case r == '!', r == ';':
		l.emit(TokenSolo, string(r))
		return nil, nil
	case r == '.':
		return l.period, nil
	case r == '\'':
		var b strings.Builder
		return l.quoted('\'', &b), nil
	case r == '"':
		var b strings.Builder
		return l.quoted('"', &b), nil
	case unicode.IsDigit(r):
		var b strings.Builder
		_, _ = b.WriteRune(r)
		if r == '0' {
			return l.zero(&b), nil
		}
		return l.integer(&b), nil
	case unicode.IsUpper(r), r == '_':
		var b strings.Builder
		_, _ = b.WriteRune(r)
		return l.name(TokenVariable, &b), nil
	case unicode.IsLower(r):
		var b strings.Builder
		_, _ = b.WriteRune(r)
		return l.name(TokenLetterDigit, &b), nil
	case isGraphic(r):
		var b strings.Builder
		_, _ = b.WriteRune(r)
		return l.graphic(&b), nil
	default:
		return nil, UnexpectedRuneError{rune: r}
	}
}

func (l *Lexer) period(r rune) (lexState, error) {
	switch {
	case r == etx, r == '%', unicode.IsSpace(r):
		l.backup(r)
		l.emit(TokenEnd, ".")
		return nil, nil
	default:
		l.backup(r)
		var b strings.Builder
		_, _ = b.WriteRune('.')
		return l.graphic(&b), nil
	}
}

func (l *Lexer) slash(r rune) (lexState, error) {
	if r == '*' {
		l.layout = true
		return l.blockComment, nil
	}
	l.backup(r)
	var b strings.Builder
	_, _ = b.WriteRune('/')
	return l.graphic(&b), nil
}

func (l *Lexer) singleLineComment(r rune) (lexState, error) {
	switch r {
	case etx:
		l.backup(r)
		return l.init, nil
	case '\n':
		return l.init, nil
	default:
		return l.singleLineComment, nil
	}
}

func (l *Lexer) blockComment(r rune) (lexState, error) {
	switch r {
	case etx:
		return nil, ErrInsufficient
	case '*':
		return l.blockCommentStar, nil
	default:
		return l.blockComment, nil
	}
}

func (l *Lexer) blockCommentStar(r rune) (lexState, error) {
	switch r {
	case etx:
		return nil, ErrInsufficient
	case '/':
		return l.init, nil
	case '*':
		return l.blockCommentStar, nil
	default:
		return l.blockComment, nil
	}
}

func (l *Lexer) name(k TokenKind, b *strings.Builder) lexState {
	var state lexState
	state = func(r rune) (lexState, error) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			_, _ = b.WriteRune(r)
			return state, nil
		default:
			l.backup(r)
			l.emit(k, b.String())
			return nil, nil
		}
	}
	return state
}

func (l *Lexer) graphic(b *strings.Builder) lexState {
	var state lexState
	state = func(r rune) (lexState, error) {
		switch {
		case isGraphic(r):
			_, _ = b.WriteRune(r)
			return state, nil
		default:
			l.backup(r)
			l.emit(TokenGraphic, b.String())
			return nil, nil
		}
	}
	return state
}

func (l *Lexer) quoted(quote rune, b *strings.Builder) lexState {
	var state lexState
	state = func(r rune) (lexState, error) {
		switch r {
		case etx:
			return nil, ErrInsufficient
		case quote:
			return l.quotedQuote(quote, b, state), nil
		case '\\':
			return l.quotedEscape(b, state), nil
		default:
			_, _ = b.WriteRune(r)
			return state, nil
		}
	}
	return state
}

func (l *Lexer) quotedQuote(quote rune, b *strings.Builder, body lexState) lexState {
	return func(r rune) (lexState, error) {
		if r == quote {
			_, _ = b.WriteRune(r)
			return body, nil
		}
		l.backup(r)
		l.emit(TokenQuoted, b.String())
		return nil, nil
	}
}

var escapes = map[rune]rune{
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
	'0':  0,
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'`':  '`',
}

func (l *Lexer) quotedEscape(b *strings.Builder, body lexState) lexState {
	return func(r rune) (lexState, error) {
		switch r {
		case etx:
			return nil, ErrInsufficient
		case '\n':
			// continuation
			return body, nil
		}
		e, ok := escapes[r]
		if !ok {
			return nil, UnexpectedRuneError{rune: r}
		}
		_, _ = b.WriteRune(e)
		return body, nil
	}
}

func (l *Lexer) zero(b *strings.Builder) lexState {
	return func(r rune) (lexState, error) {
		switch r {
		case 'x':
			_, _ = b.WriteRune(r)
			return l.radix(b, isHex), nil
		case 'o':
			_, _ = b.WriteRune(r)
			return l.radix(b, isOctal), nil
		case 'b':
			_, _ = b.WriteRune(r)
			return l.radix(b, isBinary), nil
		case '\'':
			return l.char, nil
		default:
			return l.integer(b)(r)
		}
	}
}

func (l *Lexer) char(r rune) (lexState, error) {
	switch r {
	case etx:
		return nil, ErrInsufficient
	case '\\':
		return func(r rune) (lexState, error) {
			if r == etx {
				return nil, ErrInsufficient
			}
			e, ok := escapes[r]
			if !ok {
				return nil, UnexpectedRuneError{rune: r}
			}
			l.emit(TokenNumber, fmt.Sprintf("%d", e))
			return nil, nil
		}, nil
	default:
		l.emit(TokenNumber, fmt.Sprintf("%d", r))
		return nil, nil
	}
}

func (l *Lexer) radix(b *strings.Builder, digit func(rune) bool) lexState {
	var state lexState
	state = func(r rune) (lexState, error) {
		if digit(r) {
			_, _ = b.WriteRune(r)
			return state, nil
		}
		l.backup(r)
		l.emit(TokenNumber, b.String())
		return nil, nil
	}
	return state
}

func (l *Lexer) integer(b *strings.Builder) lexState {
	var state lexState
	state = func(r rune) (lexState, error) {
		switch {
		case unicode.IsDigit(r):
			_, _ = b.WriteRune(r)
			return state, nil
		case r == '.':
			return l.fraction(b), nil
		case r == 'e', r == 'E':
			return l.exponent(b, r), nil
		default:
			l.backup(r)
			l.emit(TokenNumber, b.String())
			return nil, nil
		}
	}
	return state
}

// fraction is after a dot. If it's not followed by a digit, the dot is not a part of the number.
func (l *Lexer) fraction(b *strings.Builder) lexState {
	return func(r rune) (lexState, error) {
		if !unicode.IsDigit(r) {
			l.backup(r)
			l.backup('.')
			l.emit(TokenNumber, b.String())
			return nil, nil
		}
		_, _ = b.WriteRune('.')
		_, _ = b.WriteRune(r)
		var state lexState
		state = func(r rune) (lexState, error) {
			switch {
			case unicode.IsDigit(r):
				_, _ = b.WriteRune(r)
				return state, nil
			case r == 'e', r == 'E':
				return l.exponent(b, r), nil
			default:
				l.backup(r)
				l.emit(TokenNumber, b.String())
				return nil, nil
			}
		}
		return state, nil
	}
}

// exponent is after an e. If it's not followed by an exponent, the e is not a part of the number.
func (l *Lexer) exponent(b *strings.Builder, e rune) lexState {
	return func(r rune) (lexState, error) {
		var sign rune
		if r == '+' || r == '-' {
			sign = r
			var err error
			if r, err = l.next(); err != nil {
				return nil, err
			}
		}
		if !unicode.IsDigit(r) {
			l.backup(r)
			if sign != 0 {
				l.backup(sign)
			}
			l.backup(e)
			l.emit(TokenNumber, b.String())
			return nil, nil
		}
		_, _ = b.WriteRune(e)
		if sign != 0 {
			_, _ = b.WriteRune(sign)
		}
		_, _ = b.WriteRune(r)
		var state lexState
		state = func(r rune) (lexState, error) {
			if unicode.IsDigit(r) {
				_, _ = b.WriteRune(r)
				return state, nil
			}
			l.backup(r)
			l.emit(TokenNumber, b.String())
			return nil, nil
		}
		return state, nil
	}
}

func isBinary(r rune) bool {
	return r == '0' || r == '1'
}

func isOctal(r rune) bool {
	return strings.ContainsRune("01234567", r)
}

func isHex(r rune) bool {
	return strings.ContainsRune("0123456789ABCDEF", unicode.ToUpper(r))
}

func isGraphic(r rune) bool {
	return strings.ContainsRune("#$&*+-./:<=>?@^~\\", r)
}

// UnexpectedRuneError represents an error which is raised when the given input contains an unexpected rune.
type UnexpectedRuneError struct {
	rune rune
}

func (e UnexpectedRuneError) Error() string {
	return fmt.Sprintf("unexpected char: %s", string(e.rune))
}
