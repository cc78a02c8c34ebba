package service

import (
	"errors"
	"fmt"

	"github.com/rbcaldoza/docflows/internal/application/port"
)

var (
	// ErrNotFound is returned when a referenced document does not exist
	ErrNotFound = errors.New("document not found")

	// ErrUnauthorized is returned when the actor lacks the required approval
	// level or role
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is returned when a required field is missing or a guard
	// condition is unmet
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned on optimistic-concurrency loss or duplicate
	// downstream documents. Safe to retry after re-reading state.
	ErrConflict = errors.New("conflict")
)

// mapStoreErr translates persistence-layer failures into caller-facing
// error kinds. Transition errors from the state machine pass through.
func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, port.ErrConcurrentUpdate) || errors.Is(err, port.ErrDuplicate) {
		return fmt.Errorf("%w: %s", ErrConflict, err)
	}
	return err
}
