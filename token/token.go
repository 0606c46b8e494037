// Package token defines the tokens produced by the C-- scanner.
package token

import "fmt"

// Kind identifies the lexical class of a token.
type Kind uint8

const (
	EOF     Kind = iota
	Illegal      // malformed input that reached a token stream

	Ident  // payload: Text
	IntLit // payload: Int
	StrLit // payload: Text, raw including quotes

	// reserved words
	Bool
	Int
	Void
	True
	False
	Struct
	Cin
	Cout
	If
	Else
	While
	Return

	// punctuation
	LCurly
	RCurly
	LParen
	RParen
	Semicolon
	Comma
	Dot

	// operators
	Write      // <<
	Read       // >>
	PlusPlus   // ++
	MinusMinus // --
	Plus
	Minus
	Times
	Divide
	Not
	And
	Or
	Equals
	NotEquals
	Less
	Greater
	LessEq
	GreaterEq
	Assign

	numKinds
)

// Unknown is the text of a kind that has no canonical form.
const Unknown = "UNKNOWN TOKEN"

// fixed holds the canonical text of every kind, empty for kinds without one.
var fixed = [...]string{
	EOF:     "",
	Illegal: "",
	Ident:   "",
	IntLit:  "",
	StrLit:  "",

	Bool:   "bool",
	Int:    "int",
	Void:   "void",
	True:   "true",
	False:  "false",
	Struct: "struct",
	Cin:    "cin",
	Cout:   "cout",
	If:     "if",
	Else:   "else",
	While:  "while",
	Return: "return",

	LCurly:    "{",
	RCurly:    "}",
	LParen:    "(",
	RParen:    ")",
	Semicolon: ";",
	Comma:     ",",
	Dot:       ".",

	Write:      "<<",
	Read:       ">>",
	PlusPlus:   "++",
	MinusMinus: "--",
	Plus:       "+",
	Minus:      "-",
	Times:      "*",
	Divide:     "/",
	Not:        "!",
	And:        "&&",
	Or:         "||",
	Equals:     "==",
	NotEquals:  "!=",
	Less:       "<",
	Greater:    ">",
	LessEq:     "<=",
	GreaterEq:  ">=",
	Assign:     "=",
}

// fails to compile when a kind is added without a table entry.
var _ [numKinds]struct{} = [len(fixed)]struct{}{}

var names = [...]string{
	EOF:     "EOF",
	Illegal: "ILLEGAL",
	Ident:   "ID",
	IntLit:  "INTLITERAL",
	StrLit:  "STRINGLITERAL",
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		ks = append(ks, k)
	}
	return ks
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	return k < numKinds
}

// Fixed returns the canonical text of k and whether k has one.
// Payload-bearing kinds and EOF/Illegal have none.
func (k Kind) Fixed() (string, bool) {
	if !k.Valid() || fixed[k] == "" {
		return "", false
	}
	return fixed[k], true
}

// HasPayload reports whether tokens of kind k carry an identifier, integer or string payload.
func (k Kind) HasPayload() bool {
	return k == Ident || k == IntLit || k == StrLit
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= Bool && k <= Return
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	if s, ok := k.Fixed(); ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Keywords maps every reserved word to its kind.
var Keywords = func() map[string]Kind {
	m := make(map[string]Kind, Return-Bool+1)
	for k := Bool; k <= Return; k++ {
		m[fixed[k]] = k
	}
	return m
}()

// Pos is the 1-based line and column of a token's first character.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is a single lexical unit. Text is set for Ident and StrLit, Int for IntLit.
type Token struct {
	Kind Kind
	Pos  Pos
	Text string
	Int  int
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, StrLit:
		return fmt.Sprintf("%s %s %s", t.Pos, t.Kind, t.Text)
	case IntLit:
		return fmt.Sprintf("%s %s %d", t.Pos, t.Kind, t.Int)
	}
	return fmt.Sprintf("%s %s", t.Pos, t.Kind)
}
