// Package harness runs fixtures through the C-- scanner and writes their token dumps.
package harness

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aCasualGoon/cmmscan/fixture"
	"github.com/aCasualGoon/cmmscan/render"
	"github.com/aCasualGoon/cmmscan/scanner"
	"github.com/aCasualGoon/cmmscan/token"
)

// DefaultFixtures are the fixtures run when none are named.
var DefaultFixtures = []string{"allTokens", "illegalTokens", "eof"}

// ErrIO marks a read or write failure while a fixture is being scanned.
var ErrIO = errors.New("i/o failure")

// A TokenSource produces tokens on demand and keeps returning token.EOF once exhausted.
type TokenSource interface {
	Next() token.Token
}

// Dump writes one formatted line per token read from src to w, stopping at
// token.EOF, which is not written. trace, if not nil, is called with the text
// of every token. It returns the number of lines written.
func Dump(src TokenSource, w io.Writer, trace func(text string)) (int, error) {
	n := 0
	for tok := src.Next(); tok.Kind != token.EOF; tok = src.Next() {
		if trace != nil {
			trace(render.Text(tok))
		}
		if _, err := io.WriteString(w, render.Format(tok)+"\n"); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Options control a Driver.
type Options struct {
	fixture.Config

	// KeepGoing continues with the remaining fixtures after a failure instead of stopping the run.
	KeepGoing bool
	// Color wraps diagnostic severity tags in ANSI color codes.
	Color bool
	// Debug logs every token as it is written.
	Debug bool
}

// A Driver runs fixtures one after another.
type Driver struct {
	opts Options
	log  *log.Logger
}

// NewDriver creates a driver. A nil logger discards log output.
func NewDriver(opts Options, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Driver{opts: opts, log: logger}
}

// Run processes the named fixtures in order. By default the first failure
// ends the run; with KeepGoing every fixture is attempted and all failures
// are returned joined.
func (d *Driver) Run(names []string) error {
	var errs []error
	for _, name := range names {
		if err := d.RunFixture(name); err != nil {
			if !d.opts.KeepGoing {
				return err
			}
			d.log.Print(err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		d.log.Printf("%d of %d fixtures failed", len(errs), len(names))
	}
	return errors.Join(errs...)
}

// RunFixture scans a single fixture into its output file.
// The fixture's streams are closed on every path out of the call.
func (d *Driver) RunFixture(name string) (err error) {
	p, err := fixture.Open(d.opts.Config, name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	rep := scanner.NewReporter(p.Diag, d.opts.Color)
	lx := scanner.NewLexer(p.In, rep)

	var trace func(string)
	if d.opts.Debug {
		trace = func(text string) { d.log.Printf("→ %s", text) }
	}

	n, err := Dump(lx, p.Out, trace)
	if err != nil {
		return fmt.Errorf("%s: writing tokens: %w: %w", name, ErrIO, err)
	}
	if err := lx.Err(); err != nil {
		return fmt.Errorf("%s: reading source: %w: %w", name, ErrIO, err)
	}

	if d.opts.Debug {
		d.log.Printf("%s: %d tokens, %d errors, %d warnings", name, n, rep.Errors(), rep.Warnings())
	}
	return nil
}
