// Package stgerr provides a coarse error-kind ladder and a last-error
// accessor pair, mirroring spec.md §2's description of a single outward
// error surface backed by internally distinguishable kinds.
package stgerr

import (
	"errors"
	"sync"
)

// Kind classifies an error into the broad category the spec's termination
// codes group by prefix (STGT_* compilation/validation, STGR_* runtime).
type Kind string

const (
	KindCompilation Kind = "STGT_COMPILATION"
	KindValidation  Kind = "STGT_VALIDATION"
	KindRuntime     Kind = "STGR_RUNTIME"
	KindIO          Kind = "STGR_IO"
	KindConfig      Kind = "STGR_CONFIG"
)

// Error wraps an underlying error with a Kind, preserving Unwrap so
// errors.Is/As still match the wrapped sentinel.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return string(e.Kind) + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Wrap tags err with kind. Wrap(nil, ...) returns nil.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the Kind tagged onto err, if any.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Last is a last-error register (each Genome owns one), mirroring the reference
// engine's LastError()/LastErrorDescription() accessors (spec.md §2):
// operations that return a plain bool success flag to a scripting caller
// still need somewhere to stash the failure detail.
type Last struct {
	mu  sync.Mutex
	err error
}

// Set records err as the most recent failure. Set(nil) clears it.
func (l *Last) Set(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

// Error returns the most recently recorded error, or nil.
func (l *Last) Error() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Description returns the most recently recorded error's message, or "".
func (l *Last) Description() string {
	if err := l.Error(); err != nil {
		return err.Error()
	}
	return ""
}
