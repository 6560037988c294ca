package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input rejected before any side effect.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced entity that is absent from the store or
	// a page element that could not be located.
	ErrNotFound = errors.New("not found")
)

// StoreError wraps an underlying persistence failure so callers can tell a
// broken store apart from a missing row. It is never folded into a success.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}

	return &StoreError{Op: op, Err: err}
}
