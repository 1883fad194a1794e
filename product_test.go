package fsm_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/aretw0/fsm"
	"github.com/aretw0/fsm/pkg/accept"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startsWithA int

const (
	swaEmpty startsWithA = iota
	swaYes
	swaNo
)

var startsWithAAccepting = accept.Enum([]startsWithA{swaEmpty, swaYes, swaNo}, swaYes)

func (s startsWithA) IsAccepted() bool { return startsWithAAccepting.Accepts(s) }

func startsWithATransition(s startsWithA, c rune) startsWithA {
	switch {
	case s != swaEmpty:
		return s
	case c == 'a':
		return swaYes
	default:
		return swaNo
	}
}

// sameEnds accepts words whose first and last characters are equal.
type sameEnds struct {
	started bool
	first   rune
	same    bool
}

func (s sameEnds) IsAccepted() bool { return s.started && s.same }

func sameEndsTransition(s sameEnds, c rune) sameEnds {
	if !s.started {
		return sameEnds{started: true, first: c, same: true}
	}
	s.same = s.first == c
	return s
}

func words(t *testing.T) []string {
	t.Helper()

	alphabet := []rune("abhelo ")
	out := []string{"", "a", "abcdefa", "abcdefg", "bcdefgb", "bcdefgh", "hello", "ahelloa", "bhellob", "hell o"}

	var grow func(prefix []rune, depth int)
	grow = func(prefix []rune, depth int) {
		out = append(out, string(prefix))
		if depth == 0 {
			return
		}
		for _, r := range alphabet[:3] {
			grow(append(slices.Clone(prefix), r), depth-1)
		}
	}
	grow(nil, 5)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		n := rng.IntN(16)
		w := make([]rune, n)
		for i := range w {
			w[i] = alphabet[rng.IntN(len(alphabet))]
		}
		if rng.IntN(3) == 0 {
			w = slices.Insert(w, rng.IntN(n+1), []rune("hello")...)
		}
		out = append(out, string(w))
	}
	return out
}

func TestIntersect_AcceptsIffBothAccept(t *testing.T) {
	both := fsm.IntersectDefault(hasHello, startsWithATransition)

	for _, w := range words(t) {
		a := fsm.NewDefault(hasHello).Run(runes(w))
		b := fsm.NewDefault(startsWithATransition).Run(runes(w))
		ab := both.Run(runes(w))

		assert.Equal(t, fsm.IsAccepted(a) && fsm.IsAccepted(b), fsm.IsAccepted(ab), "word %q", w)
		assert.Equal(t, a.State(), ab.State().A(), "word %q", w)
		assert.Equal(t, b.State(), ab.State().B(), "word %q", w)
	}
}

func TestUnite_AcceptsIffEitherAccepts(t *testing.T) {
	either := fsm.UniteDefault(startsWithATransition, sameEndsTransition)

	for _, w := range words(t) {
		a := fsm.NewDefault(startsWithATransition).Run(runes(w))
		b := fsm.NewDefault(sameEndsTransition).Run(runes(w))
		ab := either.Run(runes(w))

		assert.Equal(t, fsm.IsAccepted(a) || fsm.IsAccepted(b), fsm.IsAccepted(ab), "word %q", w)
	}
}

func TestUnite_StartsWithAOrSameEnds(t *testing.T) {
	m := fsm.UniteDefault(startsWithATransition, sameEndsTransition)

	assert.True(t, fsm.IsAccepted(m.Run(runes("abcdefa"))))
	assert.True(t, fsm.IsAccepted(m.Run(runes("abcdefg"))))
	assert.True(t, fsm.IsAccepted(m.Run(runes("bcdefgb"))))
	assert.False(t, fsm.IsAccepted(m.Run(runes("bcdefgh"))))
}

func TestIntersect_ExplicitStartStates(t *testing.T) {
	m := fsm.Intersect(q4, swaYes, hasHello, startsWithATransition)
	assert.False(t, fsm.IsAccepted(m))

	m.ApplyInPlace('o')
	assert.Equal(t, q5, m.State().A())
	assert.Equal(t, swaYes, m.State().B())
	assert.True(t, fsm.IsAccepted(m))
}

func TestIntersect_Nested(t *testing.T) {
	inner := fsm.IntersectDefault(hasHello, startsWithATransition)
	outer := fsm.Unite(inner.State(), sameEnds{}, inner.Transition(), sameEndsTransition)

	assert.True(t, fsm.IsAccepted(outer.Run(runes("ahello"))))
	assert.True(t, fsm.IsAccepted(outer.Run(runes("xyzx"))))
	assert.False(t, fsm.IsAccepted(outer.Run(runes("hello!"))))
}

func TestProduct_LockstepWithoutClassifier(t *testing.T) {
	m := fsm.ProductDefault(mod32, func(n int, up bool) int {
		if up {
			return n + 1
		}
		return n - 1
	})

	m = m.RunSlice(false, false, true)
	assert.Equal(t, uint8(31), m.State().A())
	assert.Equal(t, -1, m.State().B())
	assert.Equal(t, "(31, -1)", m.State().String())
}

func TestProduct_DuplicatorCalledOncePerStep(t *testing.T) {
	calls := 0
	dup := func(in []int) []int {
		calls++
		return slices.Clone(in)
	}

	var gotA, gotB [][]int
	ta := func(n int, in []int) int {
		gotA = append(gotA, in)
		in[0] = -1
		return n + len(in)
	}
	tb := func(n int, in []int) int {
		gotB = append(gotB, in)
		return n + in[0]
	}

	m := fsm.Product(0, 0, ta, tb, fsm.WithDuplicator(dup))
	m = m.Apply([]int{5, 6})
	m = m.Apply([]int{7})

	require.Equal(t, 2, calls)
	assert.Len(t, gotA, 2)
	assert.Len(t, gotB, 2)
	// The second machine sees the original input, unaffected by the first.
	assert.Equal(t, 3, m.State().A())
	assert.Equal(t, 12, m.State().B())
}

func TestProduct_CopyModeSharesValue(t *testing.T) {
	var seenA, seenB []rune
	ta := func(s int, c rune) int { seenA = append(seenA, c); return s + 1 }
	tb := func(s int, c rune) int { seenB = append(seenB, c); return s + 2 }

	m := fsm.Product(0, 0, ta, tb).Run(runes("xyz"))
	assert.Equal(t, []rune("xyz"), seenA)
	assert.Equal(t, []rune("xyz"), seenB)
	assert.Equal(t, 3, m.State().A())
	assert.Equal(t, 6, m.State().B())
}

func TestComposite_ApplyDoesNotAliasReceiver(t *testing.T) {
	m := fsm.IntersectDefault(hasHello, startsWithATransition)
	next := m.RunSlice([]rune("ahello")...)

	assert.Equal(t, q0, m.State().A())
	assert.Equal(t, swaEmpty, m.State().B())
	assert.Equal(t, q5, next.State().A())
	assert.Equal(t, swaYes, next.State().B())
}

func TestComposite_StatesCompareByValue(t *testing.T) {
	first := fsm.IntersectDefault(hasHello, startsWithATransition).Run(runes("ahello"))
	second := fsm.Intersect(q4, swaYes, hasHello, startsWithATransition).RunSlice('o')

	assert.Equal(t, first.State(), second.State())
	assert.True(t, first.State() == second.State())

	either := fsm.UniteDefault(hasHello, startsWithATransition)
	assert.Equal(t, either.State(), either.Run(runes("")).State())
	assert.NotEqual(t, either.State(), either.Apply('a').State())
}
