package fsm

import "fmt"

// Pair is the state of two machines run in lockstep over the same inputs.
// Each side owns its own state; neither transition ever sees the other side.
// A Pair is comparable whenever A and B are.
type Pair[D, A, B any] struct {
	a A
	b B
}

// A returns the state of the first machine.
func (p Pair[D, A, B]) A() A {
	return p.a
}

// B returns the state of the second machine.
func (p Pair[D, A, B]) B() B {
	return p.b
}

// String renders the pair as "(a, b)".
func (p Pair[D, A, B]) String() string {
	return fmt.Sprintf("(%v, %v)", p.a, p.b)
}

type productConfig[D any] struct {
	duplicate func(D) D
}

// ProductOption configures how a product machine delivers inputs to its parts.
type ProductOption[D any] func(*productConfig[D])

// WithDuplicator installs an explicit duplication function for inputs that
// cannot be shared by plain assignment (slices, maps, pointers to mutable data).
// It is called exactly once per step; the first machine receives the duplicate
// and the second machine receives the original.
func WithDuplicator[D any](duplicate func(D) D) ProductOption[D] {
	return func(c *productConfig[D]) {
		c.duplicate = duplicate
	}
}

func newProductConfig[D any](opts []ProductOption[D]) productConfig[D] {
	var cfg productConfig[D]
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// lockstep returns the transition advancing both sides of a pair with the
// same input. The duplicator, if any, runs once per step and feeds the first side.
func lockstep[D, A, B any](ta Transition[D, A], tb Transition[D, B], opts []ProductOption[D]) Transition[D, Pair[D, A, B]] {
	dup := newProductConfig(opts).duplicate
	return func(p Pair[D, A, B], input D) Pair[D, A, B] {
		first := input
		if dup != nil {
			first = dup(input)
		}
		return Pair[D, A, B]{a: ta(p.a, first), b: tb(p.b, input)}
	}
}

// Product creates a machine running two machines in lockstep.
// The product has no accept classification of its own; see Intersect and Unite.
func Product[D, A, B any](startA A, startB B, ta Transition[D, A], tb Transition[D, B], opts ...ProductOption[D]) Machine[D, Pair[D, A, B]] {
	return New(Pair[D, A, B]{a: startA, b: startB}, lockstep(ta, tb, opts))
}

// ProductDefault is Product starting both machines at their default states.
func ProductDefault[D, A, B any](ta Transition[D, A], tb Transition[D, B], opts ...ProductOption[D]) Machine[D, Pair[D, A, B]] {
	return Product(defaultState[A](), defaultState[B](), ta, tb, opts...)
}
