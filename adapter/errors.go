package adapter

import (
	"errors"
	"fmt"
)

// Lifecycle sentinel errors (spec.md §7, AdapterNotOpen / AdapterAlreadyOpen
// / AdapterClosed).
var (
	// ErrNotOpen is returned by Close on an adapter that is not open (never
	// opened, or already closed).
	ErrNotOpen = errors.New("adapter: not open")

	// ErrAlreadyOpen is returned by Open on an adapter that already has a
	// live connection.
	ErrAlreadyOpen = errors.New("adapter: already open")

	// ErrClosed is returned for work submitted to an adapter that is not
	// open: before Open, after Close, or still waiting to be handed to the
	// worker when Close runs.
	ErrClosed = errors.New("adapter: closed")
)

// OpenFailedError wraps the underlying driver error from a failed Open call
// (spec.md §7, AdapterOpenFailed).
type OpenFailedError struct {
	URI string
	Err error
}

func (e *OpenFailedError) Error() string {
	return fmt.Sprintf("adapter: open %q failed: %v", e.URI, e.Err)
}

func (e *OpenFailedError) Unwrap() error { return e.Err }

// IsNotOpen reports whether err is, or wraps, ErrNotOpen.
func IsNotOpen(err error) bool { return errors.Is(err, ErrNotOpen) }

// IsAlreadyOpen reports whether err is, or wraps, ErrAlreadyOpen.
func IsAlreadyOpen(err error) bool { return errors.Is(err, ErrAlreadyOpen) }

// IsClosed reports whether err is, or wraps, ErrClosed.
func IsClosed(err error) bool { return errors.Is(err, ErrClosed) }
