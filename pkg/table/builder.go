package table

import (
	"log/slog"
)

// Builder accumulates the cases of a transition table.
type Builder[S, D comparable] struct {
	cases  []*Case[S, D]
	states []S
	inputs []D
	logger *slog.Logger
}

// New creates an empty table builder.
func New[S, D comparable](opts ...Option) *Builder[S, D] {
	o := newOptions(opts)
	return &Builder[S, D]{
		logger: o.logger,
	}
}

// States declares the finite set of states the table is defined over.
func (b *Builder[S, D]) States(states ...S) *Builder[S, D] {
	b.states = append(b.states, states...)
	return b
}

// Inputs declares the finite input alphabet the table is defined over.
func (b *Builder[S, D]) Inputs(inputs ...D) *Builder[S, D] {
	b.inputs = append(b.inputs, inputs...)
	return b
}

// From starts a case matching any of the given states.
func (b *Builder[S, D]) From(states ...S) *Case[S, D] {
	return &Case[S, D]{builder: b, from: states}
}

// Any starts a case matching every state.
func (b *Builder[S, D]) Any() *Case[S, D] {
	return &Case[S, D]{builder: b}
}

// Otherwise adds a catch-all case moving to target.
func (b *Builder[S, D]) Otherwise(target S) *Builder[S, D] {
	return b.Any().Go(target)
}

// Len returns the number of cases added so far.
func (b *Builder[S, D]) Len() int {
	return len(b.cases)
}

func (b *Builder[S, D]) add(c *Case[S, D]) *Builder[S, D] {
	c.index = len(b.cases)
	b.cases = append(b.cases, c)
	return b
}
