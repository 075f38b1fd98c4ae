package memcache

import (
	"fmt"
)

// InvalidValueError reports that Increment found stored bytes that do not
// parse as an unsigned 64-bit decimal. It is fatal to the single call
// that hit it; the entry is left untouched.
//
// BatchIncrement never returns it — the batch path downgrades the same
// condition to IncrementNotChanged for the affected item.
type InvalidValueError struct {
	Namespace string
	Key       []byte
	Cause     error
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("memcache: value for %q in namespace %q is not an unsigned 64-bit decimal: %v",
		e.Key, e.Namespace, e.Cause)
}

func (e *InvalidValueError) Unwrap() error { return e.Cause }
