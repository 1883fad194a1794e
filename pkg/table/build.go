package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/fsm"
	"github.com/aretw0/fsm/pkg/domain"
)

// ErrUndeclared is returned when a case refers to a state or input outside the
// declared domains.
var ErrUndeclared = errors.New("value outside declared domain")

// Build validates the table and compiles it into a transition function.
func (b *Builder[S, D]) Build() (fsm.Transition[D, S], error) {
	if len(b.cases) == 0 {
		return nil, fmt.Errorf("%w: table has no cases", domain.ErrIncomplete)
	}

	if err := errors.Join(b.checkReferences(), b.checkCoverage()); err != nil {
		return nil, err
	}

	cases := slices.Clone(b.cases)
	return func(s S, d D) S {
		for _, c := range cases {
			if c.matches(s, d) {
				return c.next(s, d)
			}
		}
		panic(fmt.Errorf("%w: state %v, input %v", domain.ErrNoTransition, s, d))
	}, nil
}

// MustBuild is like Build but panics if the table is invalid.
func (b *Builder[S, D]) MustBuild() fsm.Transition[D, S] {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}

func (b *Builder[S, D]) checkReferences() error {
	var problems []string
	for _, c := range b.cases {
		if len(b.states) > 0 {
			for _, s := range c.from {
				if !slices.Contains(b.states, s) {
					problems = append(problems, fmt.Sprintf("%s: state %v is not declared", c, s))
				}
			}
			if c.target != nil && !slices.Contains(b.states, *c.target) {
				problems = append(problems, fmt.Sprintf("%s: target %v is not declared", c, *c.target))
			}
		}
		if len(b.inputs) > 0 {
			for _, d := range c.on {
				if !slices.Contains(b.inputs, d) {
					problems = append(problems, fmt.Sprintf("%s: input %v is not declared", c, d))
				}
			}
		}
	}
	return report(ErrUndeclared, problems)
}

func (b *Builder[S, D]) checkCoverage() error {
	if len(b.states) == 0 {
		return nil
	}

	var problems []string

	if len(b.inputs) == 0 {
		for _, s := range b.states {
			if !slices.ContainsFunc(b.cases, func(c *Case[S, D]) bool { return c.catchAll(s) }) {
				problems = append(problems, fmt.Sprintf("state %v has no case for arbitrary input", s))
			}
		}
		return report(domain.ErrIncomplete, problems)
	}

	fired := make([]bool, len(b.cases))
	for _, s := range b.states {
		for _, d := range b.inputs {
			i := slices.IndexFunc(b.cases, func(c *Case[S, D]) bool { return c.matches(s, d) })
			if i < 0 {
				problems = append(problems, fmt.Sprintf("(%v, %v) is not covered", s, d))
				continue
			}
			fired[i] = true
		}
	}

	for i, c := range b.cases {
		if !fired[i] {
			b.logger.Warn("unreachable case", "case", c.String())
		}
	}

	return report(domain.ErrIncomplete, problems)
}

func report(sentinel error, problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: found %d errors:\n- %s", sentinel, len(problems), strings.Join(problems, "\n- "))
}
