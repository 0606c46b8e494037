package scanner

import (
	"fmt"
	"io"

	"github.com/aCasualGoon/cmmscan/token"
)

const (
	errorTag   = "***ERROR***"
	warningTag = "***WARNING***"
)

func red(s string) string    { return "\x1b[31m" + s + "\x1b[0m" }
func yellow(s string) string { return "\x1b[33m" + s + "\x1b[0m" }

// A Reporter writes scanner diagnostics, one per line, as "line:col ***ERROR*** message".
type Reporter struct {
	w     io.Writer
	color bool

	errors   int
	warnings int
}

// NewReporter creates a reporter writing to w. With color set, the severity tag is wrapped in ANSI color codes.
func NewReporter(w io.Writer, color bool) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w, color: color}
}

// Errorf reports an error at pos.
func (rep *Reporter) Errorf(pos token.Pos, format string, args ...any) {
	rep.errors++
	tag := errorTag
	if rep.color {
		tag = red(tag)
	}
	rep.emit(pos, tag, format, args...)
}

// Warnf reports a warning at pos.
func (rep *Reporter) Warnf(pos token.Pos, format string, args ...any) {
	rep.warnings++
	tag := warningTag
	if rep.color {
		tag = yellow(tag)
	}
	rep.emit(pos, tag, format, args...)
}

func (rep *Reporter) emit(pos token.Pos, tag, format string, args ...any) {
	// diagnostics are best effort; the token stream is what gets compared
	fmt.Fprintf(rep.w, "%d:%d %s %s\n", pos.Line, pos.Col, tag, fmt.Sprintf(format, args...))
}

// Errors returns the number of errors reported so far.
func (rep *Reporter) Errors() int { return rep.errors }

// Warnings returns the number of warnings reported so far.
func (rep *Reporter) Warnings() int { return rep.warnings }
