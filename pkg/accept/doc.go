/*
Package accept derives accept classifiers for automaton state types.

A state type can implement fsm.Acceptor by hand, or tag the accepting variants
out of band and let this package build the predicate:

	type Q int

	const (
		Q0 Q = iota
		Q1
		Q2
	)

	var accepting = accept.Enum([]Q{Q0, Q1, Q2}, Q1, Q2)

	func (q Q) IsAccepted() bool { return accepting.Accepts(q) }

Sum types written as a sealed interface with one struct type per variant use
Variants, which tags by variant type:

	var accepting = accept.Variants[Token](End{})

Misuse is a programming error and panics when the classifier is derived:
deriving on a non-enumeration type, tagging a data-carrying variant, tagging a
variant twice, or tagging a value that is not a declared variant.
*/
package accept
