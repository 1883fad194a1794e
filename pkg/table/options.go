package table

import (
	"log/slog"

	"github.com/aretw0/fsm/internal/logging"
)

type options struct {
	logger *slog.Logger
}

// Option defines a functional option for configuring the Builder.
type Option func(*options)

// WithLogger sets the logger used to report unreachable cases.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	return o
}
