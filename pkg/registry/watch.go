package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/fsm/pkg/definition"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors emit for one save.
const watchDebounce = 200 * time.Millisecond

// ReloadFunc builds a fresh registry from scratch.
type ReloadFunc func(ctx context.Context) (*Registry, error)

// Watch rebuilds the catalog with reload whenever a definition file in dir
// changes, until ctx is done. A failed reload is logged and leaves the
// current automata in place.
func (r *Registry) Watch(ctx context.Context, dir string, reload ReloadFunc) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	r.logger.Info("watching definitions", "dir", dir)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if _, ok := definition.FormatOf(event.Name); !ok || event.Op == fsnotify.Chmod {
				continue
			}
			r.logger.Debug("definition changed", "path", event.Name, "op", event.Op.String())
			pending = time.After(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", "error", err)

		case <-pending:
			pending = nil
			fresh, err := reload(ctx)
			if err != nil {
				r.logger.Warn("reload failed, keeping the current automata", "error", err)
				continue
			}
			r.replace(fresh)
			r.logger.Info("automata reloaded", "count", r.Len())
		}
	}
}

// replace swaps in the automata of fresh, dropping any that are gone.
func (r *Registry) replace(fresh *Registry) {
	fresh.mu.RLock()
	automata := make(map[string]*definition.Automaton, len(fresh.automata))
	for name, a := range fresh.automata {
		automata[name] = a
	}
	fresh.mu.RUnlock()

	r.mu.Lock()
	r.automata = automata
	r.mu.Unlock()
}
