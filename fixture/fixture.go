// Package fixture pairs a fixture's input source with the file its token dump is written to.
package fixture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Error classes. A *Error matches exactly one of them with errors.Is.
var (
	ErrNotFound = errors.New("file not found")
	ErrOpen     = errors.New("cannot be opened")
	ErrClose    = errors.New("error closing files")
)

// Error describes a failure to open or close a fixture's streams.
type Error struct {
	Fixture     string
	Path        string
	Kind        error // ErrNotFound, ErrOpen or ErrClose
	Err         error
	Suggestions []string // similarly named fixtures, only for ErrNotFound
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Kind == ErrClose {
		fmt.Fprintf(&b, "%s: %v", e.Fixture, e.Kind)
	} else {
		fmt.Fprintf(&b, "%s %v", e.Fixture, e.Kind)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Config is the naming convention that maps a fixture name to its files.
type Config struct {
	InputDir  string
	OutputDir string
	InputExt  string
	OutputExt string

	// DiagExt, when set, sends scanner diagnostics to OutputDir/<name><DiagExt>
	// instead of Diagnostics.
	DiagExt string
	// Diagnostics receives scanner diagnostics when DiagExt is empty. Nil discards them.
	Diagnostics io.Writer
}

// DefaultConfig returns the layout the harness has always used: name.in read and name.out written in the working directory.
func DefaultConfig() Config {
	return Config{
		InputDir:  ".",
		OutputDir: ".",
		InputExt:  ".in",
		OutputExt: ".out",
	}
}

// InputPath returns the source file of the named fixture.
func (c Config) InputPath(name string) string {
	return filepath.Join(c.InputDir, name+c.InputExt)
}

// OutputPath returns the token dump file of the named fixture.
func (c Config) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name+c.OutputExt)
}

// DiagPath returns the diagnostics file of the named fixture, or "" when diagnostics are not written per fixture.
func (c Config) DiagPath(name string) string {
	if c.DiagExt == "" {
		return ""
	}
	return filepath.Join(c.OutputDir, name+c.DiagExt)
}

// Names lists the fixtures available in the input directory.
func (c Config) Names() ([]string, error) {
	entries, err := os.ReadDir(c.InputDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), c.InputExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), c.InputExt))
	}
	return names, nil
}

// suggest returns up to three existing fixture names within a few edits of name, closest first.
func (c Config) suggest(name string) []string {
	names, err := c.Names()
	if err != nil {
		return nil
	}
	limit := max(2, len(name)/3)
	var ranks fuzzy.Ranks
	for i, n := range names {
		d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(n))
		if d <= limit {
			ranks = append(ranks, fuzzy.Rank{Source: name, Target: n, Distance: d, OriginalIndex: i})
		}
	}
	sort.Stable(ranks)

	var out []string
	for _, r := range ranks {
		if len(out) == 3 {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

// A Pipe holds the open streams of one fixture run.
type Pipe struct {
	Name string
	// In reads the fixture source.
	In *bufio.Reader
	// Out receives the rendered token lines.
	Out *bufio.Writer
	// Diag receives scanner diagnostics.
	Diag io.Writer

	in, out, diag *os.File
	diagBuf       *bufio.Writer
	closed        bool
}

// Open opens the input and output streams of the named fixture.
// A missing input yields ErrNotFound and creates no output file; any other failure yields ErrOpen.
// On error nothing is left open.
func Open(cfg Config, name string) (*Pipe, error) {
	inPath := cfg.InputPath(name)
	in, err := os.Open(inPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Fixture: name, Path: inPath, Kind: ErrNotFound, Err: err, Suggestions: cfg.suggest(name)}
		}
		return nil, &Error{Fixture: name, Path: inPath, Kind: ErrOpen, Err: err}
	}

	outPath := cfg.OutputPath(name)
	out, err := os.Create(outPath)
	if err != nil {
		in.Close()
		return nil, &Error{Fixture: name, Path: outPath, Kind: ErrOpen, Err: err}
	}

	p := &Pipe{
		Name: name,
		In:   bufio.NewReader(in),
		Out:  bufio.NewWriter(out),
		Diag: cfg.Diagnostics,
		in:   in,
		out:  out,
	}
	if p.Diag == nil {
		p.Diag = io.Discard
	}

	if diagPath := cfg.DiagPath(name); diagPath != "" {
		diag, err := os.Create(diagPath)
		if err != nil {
			out.Close()
			in.Close()
			return nil, &Error{Fixture: name, Path: diagPath, Kind: ErrOpen, Err: err}
		}
		p.diag = diag
		p.diagBuf = bufio.NewWriter(diag)
		p.Diag = plainWriter{p.diagBuf}
	}

	return p, nil
}

// Close flushes and closes every stream of the pipe, even when an earlier one fails.
// Closing an already closed pipe does nothing.
func (p *Pipe) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	var (
		errs []error
		path string
	)
	fail := func(f *os.File, err error) {
		if err == nil {
			return
		}
		if path == "" {
			path = f.Name()
		}
		errs = append(errs, err)
	}

	fail(p.out, p.Out.Flush())
	fail(p.out, p.out.Close())
	if p.diag != nil {
		fail(p.diag, p.diagBuf.Flush())
		fail(p.diag, p.diag.Close())
	}
	fail(p.in, p.in.Close())

	if len(errs) > 0 {
		return &Error{Fixture: p.Name, Path: path, Kind: ErrClose, Err: errors.Join(errs...)}
	}
	return nil
}

// plainWriter strips terminal color codes so diagnostics files compare as plain text.
type plainWriter struct {
	w io.Writer
}

func (pw plainWriter) Write(b []byte) (int, error) {
	if _, err := io.WriteString(pw.w, stripansi.Strip(string(b))); err != nil {
		return 0, err
	}
	return len(b), nil
}
