package workflow

import (
	"context"
	"fmt"
)

// GuardFunc decides whether a candidate transition may be taken
type GuardFunc func(ctx context.Context) bool

// transition is one candidate (toState, guard) pair for a trigger
type transition struct {
	toState State
	guard   GuardFunc
}

// StateConfiguration configures the outgoing transitions of one state
type StateConfiguration struct {
	builder     *Builder
	fromState   State
	transitions map[Trigger][]transition
}

// Builder assembles the transition table for one document kind
type Builder struct {
	kind           DocumentKind
	configurations map[State]*StateConfiguration
}

// NewBuilder creates a builder for the given document kind
func NewBuilder(kind DocumentKind) *Builder {
	if !kind.IsValid() {
		panic(fmt.Sprintf("unknown document kind: %s", kind))
	}
	return &Builder{
		kind:           kind,
		configurations: make(map[State]*StateConfiguration),
	}
}

// Configure returns the configuration for the given state, creating it if needed
func (b *Builder) Configure(state State) *StateConfiguration {
	if !b.kind.Allows(state) {
		panic(fmt.Sprintf("state %s does not belong to %s lifecycle", state, b.kind))
	}

	config, exists := b.configurations[state]
	if !exists {
		config = &StateConfiguration{
			builder:     b,
			fromState:   state,
			transitions: make(map[Trigger][]transition),
		}
		b.configurations[state] = config
	}

	return config
}

// Permit allows the trigger to transition to the target state unconditionally
func (c *StateConfiguration) Permit(trigger Trigger, toState State) *StateConfiguration {
	return c.PermitIf(trigger, toState, nil)
}

// PermitIf allows the trigger to transition to the target state when the guard passes.
// Candidates for the same trigger are evaluated in registration order; the first
// passing guard wins.
func (c *StateConfiguration) PermitIf(trigger Trigger, toState State, guard GuardFunc) *StateConfiguration {
	if !c.builder.kind.Allows(toState) {
		panic(fmt.Sprintf("target state %s does not belong to %s lifecycle", toState, c.builder.kind))
	}

	c.transitions[trigger] = append(c.transitions[trigger], transition{
		toState: toState,
		guard:   guard,
	})

	return c
}

// Build creates a state machine positioned at the given state. The builder's
// transition table is copied so built machines are isolated from later edits.
func (b *Builder) Build(initialState State) StateMachine {
	if !b.kind.Allows(initialState) {
		panic(fmt.Sprintf("initial state %s does not belong to %s lifecycle", initialState, b.kind))
	}

	configsCopy := make(map[State]map[Trigger][]transition, len(b.configurations))
	for state, config := range b.configurations {
		transitionsCopy := make(map[Trigger][]transition, len(config.transitions))
		for trigger, candidates := range config.transitions {
			transitionsCopy[trigger] = append([]transition{}, candidates...)
		}
		configsCopy[state] = transitionsCopy
	}

	return &stateMachine{
		kind:         b.kind,
		currentState: initialState,
		transitions:  configsCopy,
	}
}

// stateMachine implements StateMachine
type stateMachine struct {
	kind         DocumentKind
	currentState State
	transitions  map[State]map[Trigger][]transition
}

// Kind returns the document kind the machine governs
func (m *stateMachine) Kind() DocumentKind {
	return m.kind
}

// State returns the current state
func (m *stateMachine) State() State {
	return m.currentState
}

// CanFire returns true if the trigger has at least one candidate transition
func (m *stateMachine) CanFire(trigger Trigger) bool {
	candidates, ok := m.transitions[m.currentState]
	if !ok {
		return false
	}
	return len(candidates[trigger]) > 0
}

// Fire attempts the trigger, taking the first candidate whose guard passes
func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	candidates, ok := m.transitions[m.currentState]
	if !ok {
		return fmt.Errorf("%w: %s cannot fire %s from terminal state %s",
			ErrInvalidTransition, m.kind, trigger, m.currentState)
	}

	ts, ok := candidates[trigger]
	if !ok || len(ts) == 0 {
		return fmt.Errorf("%w: %s cannot fire %s from state %s",
			ErrInvalidTransition, m.kind, trigger, m.currentState)
	}

	for _, t := range ts {
		if t.guard == nil || t.guard(ctx) {
			m.currentState = t.toState
			return nil
		}
	}

	return fmt.Errorf("%w: %s trigger %s from state %s",
		ErrGuardFailed, m.kind, trigger, m.currentState)
}

// PermittedTriggers returns all triggers with candidate transitions from the current state
func (m *stateMachine) PermittedTriggers() []Trigger {
	candidates, ok := m.transitions[m.currentState]
	if !ok {
		return []Trigger{}
	}

	triggers := make([]Trigger, 0, len(candidates))
	for trigger := range candidates {
		triggers = append(triggers, trigger)
	}

	return triggers
}
