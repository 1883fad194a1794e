package definition

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/fsm/pkg/domain"
)

// Composition operators.
const (
	OpAnd = "and"
	OpOr  = "or"
)

// Definition is the declarative form of an automaton.
// It uses "mapstructure" tags so YAML and JSON documents decode the same way.
type Definition struct {
	Name        string    `json:"name" yaml:"name" mapstructure:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Tokenizer   Tokenizer `json:"tokenizer,omitempty" yaml:"tokenizer,omitempty" mapstructure:"tokenizer"`
	Alphabet    []string  `json:"alphabet,omitempty" yaml:"alphabet,omitempty" mapstructure:"alphabet"`
	States      []string  `json:"states,omitempty" yaml:"states,omitempty" mapstructure:"states"`
	Start       string    `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	Accept      []string  `json:"accept,omitempty" yaml:"accept,omitempty" mapstructure:"accept"`
	Transitions []Rule    `json:"transitions,omitempty" yaml:"transitions,omitempty" mapstructure:"transitions"`
	Compose     *Compose  `json:"compose,omitempty" yaml:"compose,omitempty" mapstructure:"compose"`
}

// Rule is one case of a transition table. Empty From or On match anything.
type Rule struct {
	From []string `json:"from,omitempty" yaml:"from,omitempty" mapstructure:"from"`
	On   []string `json:"on,omitempty" yaml:"on,omitempty" mapstructure:"on"`
	To   string   `json:"to" yaml:"to" mapstructure:"to"`
}

// Compose folds two or more named automata with a boolean operator.
type Compose struct {
	Op string   `json:"op" yaml:"op" mapstructure:"op"`
	Of []string `json:"of" yaml:"of" mapstructure:"of"`
}

// IsComposite reports whether the definition composes other automata.
func (d *Definition) IsComposite() bool {
	return d.Compose != nil
}

// StartState returns the explicit start state, or the first declared state.
func (d *Definition) StartState() string {
	if d.Start != "" || len(d.States) == 0 {
		return d.Start
	}
	return d.States[0]
}

// Validate checks the definition for internal consistency.
// Totality of the transition table is checked at compile time.
func (d *Definition) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if d.Name == "" {
		add("missing name")
	}

	if d.Compose != nil {
		if len(d.States) > 0 || len(d.Transitions) > 0 || len(d.Accept) > 0 || len(d.Alphabet) > 0 || d.Start != "" {
			add("a composite definition cannot declare states, alphabet or transitions")
		}
		if d.Tokenizer != "" {
			add("a composite definition inherits its tokenizer")
		}
		if d.Compose.Op != OpAnd && d.Compose.Op != OpOr {
			add("unknown compose op %q (want %q or %q)", d.Compose.Op, OpAnd, OpOr)
		}
		if len(d.Compose.Of) < 2 {
			add("compose needs at least two automata, got %d", len(d.Compose.Of))
		}
		return d.report(problems)
	}

	if _, err := d.Tokenizer.resolve(); err != nil {
		add("%v", err)
	}

	if len(d.States) == 0 {
		add("no states declared")
	}
	if dup := duplicates(d.States); len(dup) > 0 {
		add("states declared more than once: %s", strings.Join(dup, ", "))
	}
	if dup := duplicates(d.Alphabet); len(dup) > 0 {
		add("symbols declared more than once: %s", strings.Join(dup, ", "))
	}
	if dup := duplicates(d.Accept); len(dup) > 0 {
		add("states tagged accepting more than once: %s", strings.Join(dup, ", "))
	}

	if start := d.StartState(); start != "" && !slices.Contains(d.States, start) {
		add("start state %q is not declared", start)
	}
	for _, s := range d.Accept {
		if !slices.Contains(d.States, s) {
			add("accepting state %q is not declared", s)
		}
	}

	if len(d.Transitions) == 0 {
		add("no transitions declared")
	}
	for i, r := range d.Transitions {
		if r.To == "" {
			add("transition #%d has no target", i)
		} else if !slices.Contains(d.States, r.To) {
			add("transition #%d targets undeclared state %q", i, r.To)
		}
		for _, s := range r.From {
			if !slices.Contains(d.States, s) {
				add("transition #%d starts from undeclared state %q", i, s)
			}
		}
		if len(d.Alphabet) > 0 {
			for _, sym := range r.On {
				if !slices.Contains(d.Alphabet, sym) {
					add("transition #%d reads undeclared symbol %q", i, sym)
				}
			}
		}
	}

	return d.report(problems)
}

func (d *Definition) report(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	name := d.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Errorf("%w %s: found %d errors:\n- %s", domain.ErrInvalidDefinition, name, len(problems), strings.Join(problems, "\n- "))
}

func duplicates(values []string) []string {
	seen := make(map[string]bool, len(values))
	var dup []string
	for _, v := range values {
		if seen[v] && !slices.Contains(dup, v) {
			dup = append(dup, v)
		}
		seen[v] = true
	}
	return dup
}
