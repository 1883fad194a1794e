package runner

import (
	"log/slog"

	"github.com/aretw0/fsm/pkg/domain"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithHooks registers observability callbacks. Repeated calls accumulate.
func WithHooks(hooks domain.Hooks) Option {
	return func(r *Runner) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// WithTrace records every visited state in the result.
func WithTrace(enabled bool) Option {
	return func(r *Runner) {
		r.trace = enabled
	}
}
