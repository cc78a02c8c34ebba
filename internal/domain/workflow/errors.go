package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a trigger is not legal from the current state
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInvalidState is returned when a state does not belong to the document kind
	ErrInvalidState = errors.New("invalid state")

	// ErrGuardFailed is returned when every candidate transition's guard rejects the trigger
	ErrGuardFailed = errors.New("guard condition failed")
)
