// Package scanner provides the C-- scanner: a rune cursor with line and column tracking and the tokenizer built on it.
package scanner

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// EOF represents the synthetic termination rune of the input.
const EOF rune = -1

// A TextPosition represents a position within the scanned input.
type TextPosition struct {
	// Idx is the offset in bytes from the beginning of the input.
	Idx int
	// Line is the line component of the position. Can also be seen as the number of line breaks since the beginning of the input plus one.
	Line int
	// Col is the column component of the position. Can also be seen as the number of runes since the last line break plus one.
	Col int
}

// A Scanner reads runes from a stream while keeping track of their position.
type Scanner struct {
	TextPosition
	r *bufio.Reader

	err    error
	eof    bool
	marked TextPosition
	slice  strings.Builder // runes popped since the last Mark
}

// NewScanner creates a new scanner reading from r, initialized to line 1, column 1.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	start := TextPosition{Idx: 0, Line: 1, Col: 1}
	return &Scanner{
		TextPosition: start,
		r:            br,
		marked:       start,
	}
}

// Pos returns the TextPosition the scanner is currently at.
func (scanner *Scanner) Pos() TextPosition {
	return scanner.TextPosition
}

// IsEOF returns whether the scanner has consumed all of its input.
func (scanner *Scanner) IsEOF() bool {
	return scanner.Peek() == EOF
}

// Err returns the first read error other than io.EOF, if any.
// Once a read fails the scanner behaves as if the input had ended.
func (scanner *Scanner) Err() error {
	return scanner.err
}

func (scanner *Scanner) read() (rune, int) {
	if scanner.eof {
		return EOF, 0
	}
	r, w, err := scanner.r.ReadRune()
	if err != nil {
		scanner.eof = true
		if !errors.Is(err, io.EOF) {
			scanner.err = err
		}
		return EOF, 0
	}
	return r, w
}

// Pop returns the rune at the current scanner position and advances the position to the next rune.
// If the input is exhausted, EOF is returned.
// All line breaks (CR, LF and CRLF) are normalized to LF.
func (scanner *Scanner) Pop() rune {
	r, w := scanner.read()
	if r == EOF {
		return EOF
	}

	scanner.Idx += w
	scanner.Col++

	switch r {
	case '\n':
		scanner.Line++
		scanner.Col = 1

	case '\r':
		scanner.Line++
		scanner.Col = 1

		// check if part of CRLF. if so, skip LF too.
		if next, nw := scanner.read(); next == '\n' {
			scanner.Idx += nw
		} else if next != EOF {
			_ = scanner.r.UnreadRune()
		}

		// normalize CR and CRLF to LF
		r = '\n'
	}

	scanner.slice.WriteRune(r)
	return r
}

// Peek returns the rune at the current scanner position without advancing.
// If the input is exhausted, EOF is returned.
// A CR is reported as LF.
func (scanner *Scanner) Peek() rune {
	r, _ := scanner.read()
	if r == EOF {
		return EOF
	}
	_ = scanner.r.UnreadRune()
	if r == '\r' {
		return '\n'
	}
	return r
}

// Mark marks the current scanner position to be the start of the next Scanner.Slice call.
func (scanner *Scanner) Mark() {
	scanner.marked = scanner.TextPosition
	scanner.slice.Reset()
}

// Marked returns the TextPosition that was last marked using Scanner.Mark.
func (scanner *Scanner) Marked() TextPosition {
	return scanner.marked
}

// Slice returns the normalized text from the last position marked with Scanner.Mark (inclusive) to the current scanner position (exclusive).
func (scanner *Scanner) Slice() string {
	return scanner.slice.String()
}
