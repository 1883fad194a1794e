package table

import (
	"fmt"
	"slices"
	"strings"
)

// Case is one arm of a transition table. Empty state or input lists match
// anything.
type Case[S, D comparable] struct {
	builder *Builder[S, D]
	from    []S
	on      []D
	guard   func(S, D) bool
	next    func(S, D) S
	target  *S
	index   int
}

// On restricts the case to the given inputs.
func (c *Case[S, D]) On(inputs ...D) *Case[S, D] {
	c.on = append(c.on, inputs...)
	return c
}

// If restricts the case to pairs for which guard returns true.
// The guard must be pure.
func (c *Case[S, D]) If(guard func(S, D) bool) *Case[S, D] {
	c.guard = guard
	return c
}

// Go closes the case with a fixed target state.
func (c *Case[S, D]) Go(target S) *Builder[S, D] {
	c.target = &target
	c.next = func(S, D) S { return target }
	return c.builder.add(c)
}

// Map closes the case with a function computing the next state.
// The function must be pure.
func (c *Case[S, D]) Map(next func(S, D) S) *Builder[S, D] {
	c.next = next
	return c.builder.add(c)
}

func (c *Case[S, D]) matches(s S, d D) bool {
	if len(c.from) > 0 && !slices.Contains(c.from, s) {
		return false
	}
	if len(c.on) > 0 && !slices.Contains(c.on, d) {
		return false
	}
	return c.guard == nil || c.guard(s, d)
}

// catchAll reports whether the case matches every input of state s.
func (c *Case[S, D]) catchAll(s S) bool {
	return len(c.on) == 0 && c.guard == nil && (len(c.from) == 0 || slices.Contains(c.from, s))
}

func (c *Case[S, D]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "case #%d (", c.index)
	sb.WriteString(formatList(c.from))
	sb.WriteString(", ")
	sb.WriteString(formatList(c.on))
	sb.WriteString(")")
	if c.guard != nil {
		sb.WriteString(" if <guard>")
	}
	return sb.String()
}

func formatList[T any](values []T) string {
	switch len(values) {
	case 0:
		return "_"
	case 1:
		return fmt.Sprint(values[0])
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " | ")
}
