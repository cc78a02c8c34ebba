package workflow

import "context"

// StateMachine tracks the current state of one document and validates transitions
type StateMachine interface {
	// Kind returns the document kind the machine governs
	Kind() DocumentKind

	// State returns the current state
	State() State

	// CanFire returns true if the trigger has at least one candidate transition
	// from the current state (guards are evaluated by Fire, not here)
	CanFire(trigger Trigger) bool

	// Fire attempts the trigger, moving to the target state if a candidate
	// transition's guard passes
	Fire(ctx context.Context, trigger Trigger) error

	// PermittedTriggers returns all triggers with candidate transitions from
	// the current state
	PermittedTriggers() []Trigger
}
