package definition

import "github.com/aretw0/fsm"

// Node is the state of a compiled automaton: a base State, or the pair of
// states of a composite.
type Node interface {
	fsm.Acceptor
	String() string
}

// State is a named state of a base automaton.
type State struct {
	Name      string
	accepting bool
}

// IsAccepted implements fsm.Acceptor.
func (s State) IsAccepted() bool {
	return s.accepting
}

func (s State) String() string {
	return s.Name
}

// erase hides the concrete state type of m behind Node so that base and
// composite automata share one machine type.
func erase[S Node](m fsm.Machine[string, S]) fsm.Machine[string, Node] {
	next := m.Transition()
	return fsm.New[string, Node](m.State(), func(n Node, symbol string) Node {
		return next(n.(S), symbol)
	})
}
