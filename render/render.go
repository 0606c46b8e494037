// Package render turns tokens into the line format stored in golden files.
//
// Every token becomes one line:
//
//	"%3d:%2d\t%s"
//
// the line number right-aligned in three columns, a colon, the column number
// right-aligned in two, a tab and the token text. Baselines depend on these
// widths byte for byte.
package render

import (
	"fmt"
	"strconv"

	"github.com/aCasualGoon/cmmscan/token"
)

// Text returns the canonical text of tok. It never fails: kinds without a
// canonical form render as token.Unknown.
func Text(tok token.Token) string {
	switch tok.Kind {
	case token.Ident, token.StrLit:
		return tok.Text
	case token.IntLit:
		return strconv.Itoa(tok.Int)
	}
	if s, ok := tok.Kind.Fixed(); ok {
		return s
	}
	return token.Unknown
}

// Line formats a single output line without the trailing newline.
func Line(line, col int, text string) string {
	return fmt.Sprintf("%3d:%2d\t%s", line, col, text)
}

// Format renders tok at its own position.
func Format(tok token.Token) string {
	return Line(tok.Pos.Line, tok.Pos.Col, Text(tok))
}
