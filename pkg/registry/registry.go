package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/fsm/internal/logging"
	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
)

// Option defines a functional option for the Registry.
type Option func(*Registry)

// WithLogger sets the logger used by the registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry manages the available automata.
type Registry struct {
	mu       sync.RWMutex
	automata map[string]*definition.Automaton
	logger   *slog.Logger
}

// NewRegistry creates a new empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		automata: make(map[string]*definition.Automaton),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Register adds an automaton to the registry.
// If an automaton with the same name exists, it is overwritten.
func (r *Registry) Register(a *definition.Automaton) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.automata[a.Name()]; ok {
		r.logger.Warn("automaton replaced", "automaton", a.Name())
	}
	r.automata[a.Name()] = a
}

// Get looks up an automaton by name.
func (r *Registry) Get(name string) (*definition.Automaton, error) {
	r.mu.RLock()
	a, ok := r.automata[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, name)
	}
	return a, nil
}

// Names returns the registered automaton names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.automata))
	for name := range r.automata {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered automata.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.automata)
}

// LoadDir decodes every definition file in dir, compiles them with composite
// parts first and registers the result. Nothing is registered if any
// definition fails.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read definitions: %w", err)
	}

	defs := make(map[string]*definition.Definition)
	paths := make(map[string]string)
	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := definition.FormatOf(e.Name()); !ok {
			continue
		}

		path := filepath.Join(dir, e.Name())
		def, err := definition.Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, ok := paths[def.Name]; ok {
			errs = append(errs, fmt.Errorf("%w: %s is defined in both %s and %s", domain.ErrInvalidDefinition, def.Name, prev, path))
			continue
		}
		paths[def.Name] = path
		r.logger.Debug("definition loaded", "automaton", def.Name, "path", path)
		defs[def.Name] = def
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}

	n, err := r.install(defs)
	if err != nil {
		return err
	}
	r.logger.Info("automata loaded", "dir", dir, "count", n)
	return nil
}

// Source hands out stored definitions.
type Source interface {
	LoadAll(ctx context.Context) ([]*definition.Definition, error)
}

// LoadSource compiles and registers every definition held by src.
func (r *Registry) LoadSource(ctx context.Context, src Source) error {
	defs, err := src.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to read definitions: %w", err)
	}
	if err := r.Add(defs...); err != nil {
		return err
	}
	r.logger.Info("automata loaded", "source", fmt.Sprintf("%T", src), "count", len(defs))
	return nil
}

// Add compiles defs with composite parts first and registers them.
// Nothing is registered if any definition fails.
func (r *Registry) Add(defs ...*definition.Definition) error {
	byName := make(map[string]*definition.Definition, len(defs))
	for _, def := range defs {
		if _, ok := byName[def.Name]; ok {
			return fmt.Errorf("%w: %s is defined more than once", domain.ErrInvalidDefinition, def.Name)
		}
		byName[def.Name] = def
	}
	_, err := r.install(byName)
	return err
}

func (r *Registry) install(defs map[string]*definition.Definition) (int, error) {
	compiled, err := r.compileAll(defs)
	if err != nil {
		return 0, err
	}
	for _, a := range compiled {
		r.Register(a)
	}
	return len(compiled), nil
}

// compileAll compiles defs in dependency order. Registered automata may be
// referenced by composites in defs.
func (r *Registry) compileAll(defs map[string]*definition.Definition) ([]*definition.Automaton, error) {
	const (
		visiting = iota + 1
		done
	)

	compiled := make(map[string]*definition.Automaton, len(defs))
	marks := make(map[string]int, len(defs))
	var stack []string

	var visit func(name string) (*definition.Automaton, error)
	visit = func(name string) (*definition.Automaton, error) {
		def, ok := defs[name]
		if !ok {
			return r.Get(name)
		}

		switch marks[name] {
		case done:
			return compiled[name], nil
		case visiting:
			cycle := slices.Concat(stack[slices.Index(stack, name):], []string{name})
			return nil, fmt.Errorf("%w: %s", domain.ErrCycle, strings.Join(cycle, " -> "))
		}

		marks[name] = visiting
		stack = append(stack, name)
		a, err := definition.Compile(def, visit, definition.WithLogger(r.logger))
		stack = stack[:len(stack)-1]
		if err != nil {
			return nil, err
		}
		marks[name] = done
		compiled[name] = a
		return a, nil
	}

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]*definition.Automaton, 0, len(names))
	for _, name := range names {
		a, err := visit(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
