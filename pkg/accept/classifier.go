package accept

// Classifier reports whether a state value is accepting.
// Implementations must be pure and total over S.
type Classifier[S any] interface {
	Accepts(S) bool
}

// Func adapts a plain predicate to a Classifier.
type Func[S any] func(S) bool

// Accepts calls f(s).
func (f Func[S]) Accepts(s S) bool {
	return f(s)
}

// None is a classifier that rejects every state.
func None[S any]() Func[S] {
	return func(S) bool { return false }
}

// Not inverts a classifier.
func Not[S any](c Classifier[S]) Func[S] {
	return func(s S) bool { return !c.Accepts(s) }
}
