package scanner

import (
	"io"
	"math"
	"strconv"

	"github.com/aCasualGoon/cmmscan/token"
)

// A Lexer turns C-- source into tokens, one per call to Next.
// Every Lexer starts at line 1, column 1; position state is never shared between lexers.
type Lexer struct {
	sc  *Scanner
	rep *Reporter
}

// NewLexer creates a lexer reading source from r and reporting diagnostics to rep.
// A nil rep discards diagnostics.
func NewLexer(r io.Reader, rep *Reporter) *Lexer {
	if rep == nil {
		rep = NewReporter(nil, false)
	}
	return &Lexer{sc: NewScanner(r), rep: rep}
}

// Err returns the read error that ended the token stream early, if any.
func (lx *Lexer) Err() error {
	return lx.sc.Err()
}

// Next returns the next token. Once the input is exhausted it keeps returning token.EOF.
// Malformed input is reported to the Reporter and skipped.
func (lx *Lexer) Next() token.Token {
	for {
		lx.sc.Mark()
		start := lx.sc.Marked()
		pos := token.Pos{Line: start.Line, Col: start.Col}

		r := lx.sc.Pop()
		switch {
		case r == EOF:
			return token.Token{Kind: token.EOF, Pos: pos}

		case r == ' ' || r == '\t' || r == '\f' || r == '\n':
			continue

		case r == '#' || (r == '/' && lx.sc.Peek() == '/'):
			lx.skipLine()
			continue

		case isLetter(r) || r == '_':
			return lx.ident(pos)

		case isDigit(r):
			return lx.number(pos)

		case r == '"':
			if tok, ok := lx.str(pos); ok {
				return tok
			}
			continue
		}

		if k, ok := lx.operator(r); ok {
			return token.Token{Kind: k, Pos: pos}
		}
		lx.rep.Errorf(pos, "illegal character ignored: %c", r)
	}
}

func (lx *Lexer) skipLine() {
	for !lx.sc.IsEOF() && lx.sc.Peek() != '\n' {
		lx.sc.Pop()
	}
}

func (lx *Lexer) ident(pos token.Pos) token.Token {
	for r := lx.sc.Peek(); isLetter(r) || isDigit(r) || r == '_'; r = lx.sc.Peek() {
		lx.sc.Pop()
	}
	text := lx.sc.Slice()
	if k, ok := token.Keywords[text]; ok {
		return token.Token{Kind: k, Pos: pos}
	}
	return token.Token{Kind: token.Ident, Pos: pos, Text: text}
}

func (lx *Lexer) number(pos token.Pos) token.Token {
	for isDigit(lx.sc.Peek()) {
		lx.sc.Pop()
	}
	v, err := strconv.ParseInt(lx.sc.Slice(), 10, 32)
	if err != nil {
		// digits only, so the sole failure is overflow
		lx.rep.Warnf(pos, "integer literal too large; using max value")
		v = math.MaxInt32
	}
	return token.Token{Kind: token.IntLit, Pos: pos, Int: int(v)}
}

// str scans the rest of a string literal whose opening quote was consumed.
// Ignored literals are reported and yield ok == false.
func (lx *Lexer) str(pos token.Pos) (tok token.Token, ok bool) {
	bad := false
	for {
		switch lx.sc.Peek() {
		case EOF, '\n':
			if bad {
				lx.rep.Errorf(pos, "unterminated string literal with bad escaped character ignored")
			} else {
				lx.rep.Errorf(pos, "unterminated string literal ignored")
			}
			return token.Token{}, false

		case '"':
			lx.sc.Pop()
			if bad {
				lx.rep.Errorf(pos, "string literal with bad escaped character ignored")
				return token.Token{}, false
			}
			return token.Token{Kind: token.StrLit, Pos: pos, Text: lx.sc.Slice()}, true

		case '\\':
			lx.sc.Pop()
			if isEscape(lx.sc.Peek()) {
				lx.sc.Pop()
			} else {
				// a line break or EOF here is left for the unterminated check
				bad = true
			}

		default:
			lx.sc.Pop()
		}
	}
}

func (lx *Lexer) accept(r rune) bool {
	if lx.sc.Peek() != r {
		return false
	}
	lx.sc.Pop()
	return true
}

func (lx *Lexer) operator(r rune) (token.Kind, bool) {
	switch r {
	case '{':
		return token.LCurly, true
	case '}':
		return token.RCurly, true
	case '(':
		return token.LParen, true
	case ')':
		return token.RParen, true
	case ';':
		return token.Semicolon, true
	case ',':
		return token.Comma, true
	case '.':
		return token.Dot, true
	case '*':
		return token.Times, true
	case '/':
		return token.Divide, true

	case '<':
		switch {
		case lx.accept('<'):
			return token.Write, true
		case lx.accept('='):
			return token.LessEq, true
		}
		return token.Less, true
	case '>':
		switch {
		case lx.accept('>'):
			return token.Read, true
		case lx.accept('='):
			return token.GreaterEq, true
		}
		return token.Greater, true
	case '+':
		if lx.accept('+') {
			return token.PlusPlus, true
		}
		return token.Plus, true
	case '-':
		if lx.accept('-') {
			return token.MinusMinus, true
		}
		return token.Minus, true
	case '!':
		if lx.accept('=') {
			return token.NotEquals, true
		}
		return token.Not, true
	case '=':
		if lx.accept('=') {
			return token.Equals, true
		}
		return token.Assign, true
	case '&':
		return token.And, lx.accept('&')
	case '|':
		return token.Or, lx.accept('|')
	}
	return token.Illegal, false
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isEscape(r rune) bool {
	switch r {
	case 'n', 't', '\'', '"', '?', '\\':
		return true
	}
	return false
}
