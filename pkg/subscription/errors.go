package subscription

import (
	"errors"
	"fmt"
)

// Registry errors.
var (
	ErrEmptyPath             = errors.New("empty subscription path")
	ErrEmptyFieldMask        = errors.New("empty field mask")
	ErrInvalidFieldMask      = errors.New("invalid field mask")
	ErrNilListener           = errors.New("nil listener")
	ErrListenerNotComparable = errors.New("listener is not comparable")
	ErrListenerFailure       = errors.New("listener failure")
	ErrListenerPanic         = errors.New("listener panicked")
	ErrListenerBufferFull    = errors.New("listener buffer full")
)

// ListenerError reports a failed OnChange. It matches ErrListenerFailure.
type ListenerError struct {
	// Subscribed is the path the failing subscription was registered on.
	Subscribed string

	// Update is the update that was being delivered.
	Update Update

	// Err is the error returned by OnChange, or ErrListenerPanic.
	Err error
}

func (e *ListenerError) Error() string {
	if e.Subscribed == e.Update.Path {
		return fmt.Sprintf("listener failure on %s: %v", e.Update.Path, e.Err)
	}
	return fmt.Sprintf("listener failure on %s (via %s): %v", e.Update.Path, e.Subscribed, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrListenerFailure) hold for every ListenerError.
func (e *ListenerError) Is(target error) bool {
	return target == ErrListenerFailure
}
