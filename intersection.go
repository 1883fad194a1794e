package fsm

// Both is the state of an intersection machine. It is accepting only when
// both parts are accepting.
type Both[D any, A, B Acceptor] struct {
	Pair[D, A, B]
}

// IsAccepted implements Acceptor.
func (s Both[D, A, B]) IsAccepted() bool {
	return s.a.IsAccepted() && s.b.IsAccepted()
}

// Intersect creates a machine that accepts an input sequence iff both
// component machines accept it.
func Intersect[D any, A, B Acceptor](startA A, startB B, ta Transition[D, A], tb Transition[D, B], opts ...ProductOption[D]) Machine[D, Both[D, A, B]] {
	step := lockstep(ta, tb, opts)
	start := Both[D, A, B]{Pair[D, A, B]{a: startA, b: startB}}
	return New(start, func(s Both[D, A, B], input D) Both[D, A, B] {
		return Both[D, A, B]{step(s.Pair, input)}
	})
}

// IntersectDefault is Intersect starting both machines at their default states.
func IntersectDefault[D any, A, B Acceptor](ta Transition[D, A], tb Transition[D, B], opts ...ProductOption[D]) Machine[D, Both[D, A, B]] {
	return Intersect(defaultState[A](), defaultState[B](), ta, tb, opts...)
}
