package harness

import (
	"errors"

	"github.com/aCasualGoon/cmmscan/fixture"
)

// Process exit statuses.
const (
	ExitOK       = 0
	ExitNotFound = 1
	ExitOpen     = 2
	ExitClose    = 3
	ExitIO       = 4
	ExitFailure  = 5
	ExitUsage    = 64
)

// ExitCode maps an error returned by Driver.Run to a process exit status.
// When a joined error holds several classes, the first matching class in
// the order not found, open, close, i/o wins.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, fixture.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, fixture.ErrOpen):
		return ExitOpen
	case errors.Is(err, fixture.ErrClose):
		return ExitClose
	case errors.Is(err, ErrIO):
		return ExitIO
	}
	return ExitFailure
}
