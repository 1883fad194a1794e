package fsm

import (
	"iter"
	"slices"
)

// Transition maps a state and one input to the next state.
// It must be pure and total over every (state, input) pair the caller feeds it.
type Transition[D, S any] func(S, D) S

// Acceptor is implemented by state types that can classify themselves
// as accepting or not.
type Acceptor interface {
	// IsAccepted reports whether the state is an accepting state.
	IsAccepted() bool
}

// Defaulter lets a state type supply a start value other than its zero value.
// NewDefault calls Default on the zero value of S.
type Defaulter[S any] interface {
	Default() S
}

// Machine is a deterministic finite automaton: a current state and a fixed
// transition function.
//
// Machine is a value type. Apply and Run return a new Machine and leave the
// receiver untouched; ApplyInPlace and RunInPlace mutate it and require
// exclusive access.
type Machine[D, S any] struct {
	state      S
	transition Transition[D, S]
}

// New creates a Machine starting at start.
func New[D, S any](start S, transition Transition[D, S]) Machine[D, S] {
	return Machine[D, S]{
		state:      start,
		transition: transition,
	}
}

// NewDefault creates a Machine starting at the default state of S.
func NewDefault[D, S any](transition Transition[D, S]) Machine[D, S] {
	return New(defaultState[S](), transition)
}

func defaultState[S any]() S {
	var zero S
	if d, ok := any(zero).(Defaulter[S]); ok {
		return d.Default()
	}
	return zero
}

// State returns the current state.
func (m Machine[D, S]) State() S {
	return m.state
}

// Transition returns the transition function the machine was built with.
func (m Machine[D, S]) Transition() Transition[D, S] {
	return m.transition
}

// Apply feeds one input and returns the resulting machine.
func (m Machine[D, S]) Apply(input D) Machine[D, S] {
	m.state = m.transition(m.state, input)
	return m
}

// ApplyInPlace feeds one input, replacing the current state with the result.
func (m *Machine[D, S]) ApplyInPlace(input D) {
	*m = m.Apply(input)
}

// Run feeds every input of seq in order and returns the resulting machine.
func (m Machine[D, S]) Run(seq iter.Seq[D]) Machine[D, S] {
	for input := range seq {
		m = m.Apply(input)
	}
	return m
}

// RunSlice is Run over a fixed list of inputs.
func (m Machine[D, S]) RunSlice(inputs ...D) Machine[D, S] {
	return m.Run(slices.Values(inputs))
}

// RunInPlace feeds every input of seq in order, mutating the machine.
func (m *Machine[D, S]) RunInPlace(seq iter.Seq[D]) {
	for input := range seq {
		m.ApplyInPlace(input)
	}
}

// IsAccepted reports whether the current state of m is accepting.
func IsAccepted[D any, S Acceptor](m Machine[D, S]) bool {
	return m.state.IsAccepted()
}

// AcceptedBy classifies the current state of m with an out-of-band classifier,
// such as a table derived with the accept package.
func AcceptedBy[D, S any](m Machine[D, S], classify func(S) bool) bool {
	return classify(m.state)
}
