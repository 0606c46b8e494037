// Command cmmscan runs C-- fixtures through the scanner and writes one token dump per fixture.
//
// Usage:
//
//	cmmscan [flags] [fixture ...]
//
// With no fixture names it runs allTokens, illegalTokens and eof. Each
// fixture reads <in>/<name>.in and writes <out>/<name>.out; compare the
// dumps against accepted baselines with any diff tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/aCasualGoon/cmmscan/fixture"
	"github.com/aCasualGoon/cmmscan/harness"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, stderr io.Writer) int {
	prog := filepath.Base(os.Args[0])
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := fixture.DefaultConfig()
	opts := harness.Options{}
	fs.StringVar(&cfg.InputDir, "in", cfg.InputDir, "directory holding the fixture sources")
	fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory the token dumps are written to")
	fs.StringVar(&cfg.InputExt, "inext", cfg.InputExt, "extension of fixture sources")
	fs.StringVar(&cfg.OutputExt, "outext", cfg.OutputExt, "extension of token dumps")
	fs.StringVar(&cfg.DiagExt, "diagext", "", "write scanner diagnostics to <out>/<name><diagext> instead of stderr")
	fs.BoolVar(&opts.KeepGoing, "keep-going", false, "continue with the next fixture after a failure")
	fs.BoolVar(&opts.Color, "color", false, "color diagnostic severity tags")
	fs.BoolVar(&opts.Debug, "debug", false, "log every token as it is written")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [fixture ...]\n", prog)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return harness.ExitOK
		}
		return harness.ExitUsage
	}

	names := fs.Args()
	if len(names) == 0 {
		names = harness.DefaultFixtures
	}

	cfg.Diagnostics = stderr
	opts.Config = cfg
	logger := log.New(stderr, prog+": ", 0)

	if err := harness.NewDriver(opts, logger).Run(names); err != nil {
		if !opts.KeepGoing {
			logger.Print(err)
		}
		return harness.ExitCode(err)
	}
	return harness.ExitOK
}
