package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep   EventType = "step"
	EventResult EventType = "result"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Automaton string    `json:"automaton"`
}

// StepEvent describes a single transition.
type StepEvent struct {
	EventBase
	Index int    `json:"index"`
	From  string `json:"from"`
	Input string `json:"input"`
	To    string `json:"to"`
}

// ResultEvent is emitted once an input sequence has been consumed.
type ResultEvent struct {
	EventBase
	Result *Result `json:"result"`
}

// Hooks defines callbacks for runner observability.
// Nil callbacks are skipped.
type Hooks struct {
	OnStep   func(context.Context, *StepEvent)
	OnResult func(context.Context, *ResultEvent)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnStep: func(ctx context.Context, e *StepEvent) {
			if h.OnStep != nil {
				h.OnStep(ctx, e)
			}
			if other.OnStep != nil {
				other.OnStep(ctx, e)
			}
		},
		OnResult: func(ctx context.Context, e *ResultEvent) {
			if h.OnResult != nil {
				h.OnResult(ctx, e)
			}
			if other.OnResult != nil {
				other.OnResult(ctx, e)
			}
		},
	}
}
