package storage

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// PersistenceError describes a failed read or write of the durable cart
// record. It is logged, never returned to cart callers: the in-memory cart
// stays authoritative for the session.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cart store %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// failures remembers the most recent persistence error of a store.
type failures struct {
	mu   sync.Mutex
	last *PersistenceError
}

func (f *failures) report(op, key string, err error) {
	perr := &PersistenceError{Op: op, Key: key, Err: err}
	log.Warn().Err(err).Str("op", op).Str("key", key).Msg("cart persistence failed")

	f.mu.Lock()
	f.last = perr
	f.mu.Unlock()
}

// LastError returns the most recent persistence failure, or nil.
func (f *failures) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.last == nil {
		return nil
	}
	return f.last
}
