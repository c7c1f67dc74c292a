package poller

import (
	"errors"
	"fmt"
)

// ErrNoFetch is reported when the poller was built without a fetch function.
var ErrNoFetch = errors.New("poller has no fetch function")

// PanicError wraps a value recovered from a panicking fetch.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("fetch panicked: %v", e.Value)
}
