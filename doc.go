/*
Package fsm is a small library of deterministic finite automata (DFA) with
algebraic composition.

A Machine pairs a current state with a pure transition function
func(state, input) state. It evolves either functionally (Apply, Run return a
new Machine) or in place (ApplyInPlace, RunInPlace). Both styles compute the
same states.

# Concept

States and inputs are plain Go values. A state type that implements Acceptor
can be asked whether the machine currently accepts:

	type Q int

	const (
		Q0 Q = iota
		Q1
	)

	func (q Q) IsAccepted() bool { return q == Q1 }

	func toggle(q Q, _ bool) Q { return 1 - q }

	m := fsm.New(Q0, toggle).RunSlice(true, true, true)
	fsm.IsAccepted(m) // true

# Composition

Two machines over the same input type can be run in lockstep:

  - Intersect: accepts iff both machines accept (product automaton).
  - Unite: accepts iff either machine accepts.
  - Product: the lockstep pair without any classification.

Inputs are handed to both parts once per step. Inputs that must not be shared
by plain assignment can be duplicated with WithDuplicator.

# Related packages

  - pkg/table builds total transition functions from declarative case lists.
  - pkg/accept derives accept classifiers from tagged enumeration variants.
  - pkg/definition, pkg/registry and pkg/runner load and evaluate automata
    described in YAML or JSON files, as used by the fsm CLI.
*/
package fsm
