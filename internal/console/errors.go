package console

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand indicates a command keyword the console does not know.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports malformed input. It never reaches the engine.
type UsageError struct {
	Usage string // expected syntax, e.g. "allocate <process_id> <size>"
	Err   error
}

func (e *UsageError) Error() string {
	if e.Usage == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v\nUsage: %s", e.Err, e.Usage)
}

func (e *UsageError) Unwrap() error { return e.Err }
