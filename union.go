package fsm

// Either is the state of a union machine. It is accepting when at least one
// part is accepting.
type Either[D any, A, B Acceptor] struct {
	Pair[D, A, B]
}

// IsAccepted implements Acceptor.
func (s Either[D, A, B]) IsAccepted() bool {
	return s.a.IsAccepted() || s.b.IsAccepted()
}

// Unite creates a machine that accepts an input sequence iff at least one
// component machine accepts it.
func Unite[D any, A, B Acceptor](startA A, startB B, ta Transition[D, A], tb Transition[D, B], opts ...ProductOption[D]) Machine[D, Either[D, A, B]] {
	step := lockstep(ta, tb, opts)
	start := Either[D, A, B]{Pair[D, A, B]{a: startA, b: startB}}
	return New(start, func(s Either[D, A, B], input D) Either[D, A, B] {
		return Either[D, A, B]{step(s.Pair, input)}
	})
}

// UniteDefault is Unite starting both machines at their default states.
func UniteDefault[D any, A, B Acceptor](ta Transition[D, A], tb Transition[D, B], opts ...ProductOption[D]) Machine[D, Either[D, A, B]] {
	return Unite(defaultState[A](), defaultState[B](), ta, tb, opts...)
}
