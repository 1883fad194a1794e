package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/fsm"
	"github.com/aretw0/fsm/internal/logging"
	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
)

// Runner evaluates automata. The zero value is not usable; call New.
type Runner struct {
	logger *slog.Logger
	hooks  domain.Hooks
	trace  bool
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Evaluate feeds input to a fresh machine of a and reports the final
// configuration. It stops at the first symbol outside the automaton's
// alphabet, or when ctx is done.
func (r *Runner) Evaluate(ctx context.Context, a *definition.Automaton, input string) (*domain.Result, error) {
	return r.evaluate(ctx, a, input, r.trace)
}

// Trace is like Evaluate but always records the visited states.
func (r *Runner) Trace(ctx context.Context, a *definition.Automaton, input string) (*domain.Result, error) {
	return r.evaluate(ctx, a, input, true)
}

func (r *Runner) evaluate(ctx context.Context, a *definition.Automaton, input string, trace bool) (*domain.Result, error) {
	log := r.logger.With("automaton", a.Name())

	m := a.Machine()
	res := &domain.Result{
		Automaton: a.Name(),
		Start:     m.State().String(),
	}
	if trace {
		res.Trace = []string{res.Start}
	}

	for symbol := range a.Tokens(input) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("evaluation of %s interrupted after %d steps: %w", a.Name(), res.Steps, err)
		}
		if !a.Admits(symbol) {
			log.Debug("symbol rejected", "index", res.Steps, "symbol", symbol)
			return nil, fmt.Errorf("%w %q at position %d for %s", domain.ErrUnknownSymbol, symbol, res.Steps, a.Name())
		}

		from := m.State()
		m.ApplyInPlace(symbol)
		to := m.State()

		log.Debug("step", "index", res.Steps, "from", from.String(), "input", symbol, "to", to.String())
		if r.hooks.OnStep != nil {
			r.hooks.OnStep(ctx, &domain.StepEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStep, Automaton: a.Name()},
				Index:     res.Steps,
				From:      from.String(),
				Input:     symbol,
				To:        to.String(),
			})
		}

		res.Steps++
		if trace {
			res.Trace = append(res.Trace, to.String())
		}
	}

	res.Final = m.State().String()
	res.Accepted = fsm.IsAccepted(m)

	log.Info("evaluation finished", "steps", res.Steps, "final", res.Final, "verdict", res.Verdict())
	if r.hooks.OnResult != nil {
		r.hooks.OnResult(ctx, &domain.ResultEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventResult, Automaton: a.Name()},
			Result:    res,
		})
	}
	return res, nil
}
