package checkout

import (
	"errors"
	"sort"
	"strings"
)

// ErrEmptyCart is returned when checkout is attempted with nothing in the
// cart. Callers are expected to show the empty-cart view instead.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports user-correctable input problems. No network call
// is made when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// SubmissionError wraps a failed order-creation call. The cart is left as it
// was so the user can retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "failed to place order: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
