package domain

import "errors"

// ErrNoTransition is raised (as a panic value) when a transition table meets a
// (state, input) pair none of its cases cover.
var ErrNoTransition = errors.New("no transition defined")

// ErrIncomplete is returned when a transition table does not cover its declared domains.
var ErrIncomplete = errors.New("transition table is not total")

// ErrInvalidDefinition is returned when an automaton definition is malformed.
var ErrInvalidDefinition = errors.New("invalid automaton definition")

// ErrAutomatonNotFound is returned when a named automaton is not registered.
var ErrAutomatonNotFound = errors.New("automaton not found")

// ErrUnknownSymbol is returned when an input symbol is outside an automaton's alphabet.
var ErrUnknownSymbol = errors.New("unknown input symbol")

// ErrCycle is returned when composite definitions reference each other.
var ErrCycle = errors.New("composition cycle")
