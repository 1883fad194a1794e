package definition

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/aretw0/fsm"
	"github.com/aretw0/fsm/internal/logging"
	"github.com/aretw0/fsm/pkg/accept"
	"github.com/aretw0/fsm/pkg/domain"
	"github.com/aretw0/fsm/pkg/table"
)

// Resolver looks up an already compiled automaton by name.
type Resolver func(name string) (*Automaton, error)

// Option defines a functional option for Compile.
type Option func(*compileOptions)

type compileOptions struct {
	logger *slog.Logger
}

// WithLogger sets the logger used while compiling.
func WithLogger(logger *slog.Logger) Option {
	return func(o *compileOptions) {
		o.logger = logger
	}
}

// Automaton is a compiled definition.
type Automaton struct {
	def       *Definition
	tokenizer Tokenizer
	alphabet  []string
	symbols   map[string]struct{}
	machine   fsm.Machine[string, Node]
}

// Compile validates def and builds its machine. Composite definitions look up
// their parts through resolve, which may be nil for base definitions.
func Compile(def *Definition, resolve Resolver, opts ...Option) (*Automaton, error) {
	o := compileOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	var (
		a   *Automaton
		err error
	)
	if def.IsComposite() {
		a, err = compileComposite(def, resolve)
	} else {
		a, err = compileBase(def, o.logger)
	}
	if err != nil {
		return nil, err
	}

	if len(a.alphabet) > 0 {
		a.symbols = make(map[string]struct{}, len(a.alphabet))
		for _, s := range a.alphabet {
			a.symbols[s] = struct{}{}
		}
	}
	o.logger.Debug("automaton compiled", "automaton", def.Name, "composite", def.IsComposite())
	return a, nil
}

func compileBase(def *Definition, logger *slog.Logger) (*Automaton, error) {
	b := table.New[string, string](table.WithLogger(logger.With("automaton", def.Name)))
	b.States(def.States...)
	if len(def.Alphabet) > 0 {
		b.Inputs(def.Alphabet...)
	}
	for _, r := range def.Transitions {
		c := b.From(r.From...)
		if len(r.On) > 0 {
			c.On(r.On...)
		}
		c.Go(r.To)
	}

	next, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", domain.ErrInvalidDefinition, def.Name, err)
	}

	accepting := accept.Enum(def.States, def.Accept...)
	states := make(map[string]State, len(def.States))
	for _, name := range def.States {
		states[name] = State{Name: name, accepting: accepting.Accepts(name)}
	}

	tokenizer, _ := def.Tokenizer.resolve()
	m := fsm.New(states[def.StartState()], func(s State, symbol string) State {
		return states[next(s.Name, symbol)]
	})

	return &Automaton{
		def:       def,
		tokenizer: tokenizer,
		alphabet:  slices.Clone(def.Alphabet),
		machine:   erase(m),
	}, nil
}

func compileComposite(def *Definition, resolve Resolver) (*Automaton, error) {
	if resolve == nil {
		return nil, fmt.Errorf("%w %s: composite definition needs a resolver", domain.ErrInvalidDefinition, def.Name)
	}

	parts := make([]*Automaton, 0, len(def.Compose.Of))
	for _, name := range def.Compose.Of {
		part, err := resolve(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", def.Name, err)
		}
		parts = append(parts, part)
	}

	a := &Automaton{
		def:       def,
		tokenizer: parts[0].tokenizer,
		alphabet:  parts[0].alphabet,
		machine:   parts[0].machine,
	}
	for _, part := range parts[1:] {
		if part.tokenizer != a.tokenizer {
			return nil, fmt.Errorf("%w %s: %s tokenizes by %s, %s by %s", domain.ErrInvalidDefinition,
				def.Name, parts[0].Name(), a.tokenizer, part.Name(), part.tokenizer)
		}
		a.alphabet = intersect(a.alphabet, part.alphabet)
		a.machine = combine(def.Compose.Op, a.machine, part.machine)
	}

	if a.alphabet != nil && len(a.alphabet) == 0 {
		return nil, fmt.Errorf("%w %s: parts share no input symbols", domain.ErrInvalidDefinition, def.Name)
	}
	return a, nil
}

func combine(op string, a, b fsm.Machine[string, Node]) fsm.Machine[string, Node] {
	if op == OpAnd {
		return erase(fsm.Intersect(a.State(), b.State(), a.Transition(), b.Transition()))
	}
	return erase(fsm.Unite(a.State(), b.State(), a.Transition(), b.Transition()))
}

// intersect returns the symbols closed alphabets have in common.
// A nil alphabet is open and admits anything.
func intersect(a, b []string) []string {
	switch {
	case a == nil:
		return slices.Clone(b)
	case b == nil:
		return slices.Clone(a)
	}
	out := []string{}
	for _, s := range a {
		if slices.Contains(b, s) {
			out = append(out, s)
		}
	}
	return out
}

// Name returns the automaton name.
func (a *Automaton) Name() string {
	return a.def.Name
}

// Description returns the free-form description of the definition.
func (a *Automaton) Description() string {
	return a.def.Description
}

// Definition returns the definition the automaton was compiled from.
// Callers must not modify it.
func (a *Automaton) Definition() *Definition {
	return a.def
}

// Tokenizer returns the tokenizer used to split inputs.
func (a *Automaton) Tokenizer() Tokenizer {
	return a.tokenizer
}

// Alphabet returns the closed alphabet, or nil if any symbol is admitted.
func (a *Automaton) Alphabet() []string {
	return slices.Clone(a.alphabet)
}

// Admits reports whether symbol may be fed to the automaton.
func (a *Automaton) Admits(symbol string) bool {
	if a.symbols == nil {
		return true
	}
	_, ok := a.symbols[symbol]
	return ok
}

// Machine returns a fresh machine in the start state.
func (a *Automaton) Machine() fsm.Machine[string, Node] {
	return a.machine
}

// Tokens lazily splits input into symbols.
func (a *Automaton) Tokens(input string) iter.Seq[string] {
	return a.tokenizer.Split(input)
}
