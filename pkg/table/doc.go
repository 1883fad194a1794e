/*
Package table provides a fluent builder for transition functions written as
an ordered list of cases, the way a match statement over (state, input) reads.

Example usage:

	b := table.New[Q, rune]().States(Q0, Q1, Q2, Q3, Q4, Q5)

	b.From(Q0).On('h').Go(Q1)
	b.From(Q1).On('e').Go(Q2)
	b.From(Q2).On('l').Go(Q3)
	b.From(Q3).On('l').Go(Q4)
	b.From(Q4).On('o').Go(Q5)
	b.From(Q5).Go(Q5)
	b.Otherwise(Q0)

	hasHello := b.MustBuild() // fsm.Transition[rune, Q]

The first case that matches wins. Build checks that the cases cover the
declared domains: with States and Inputs declared, every pair of the product
must be covered; with only States declared, every state needs a case that
accepts any input without a guard. Cases that can never fire are logged.

A (state, input) pair that no case covers at run time is a defect in the
table: the built function panics with an error wrapping
domain.ErrNoTransition.
*/
package table
