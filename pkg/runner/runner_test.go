package runner_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/fsm/internal/logging"
	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
	"github.com/aretw0/fsm/pkg/registry"
	"github.com/aretw0/fsm/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, name string) *definition.Automaton {
	t.Helper()
	reg := registry.NewRegistry()
	require.NoError(t, reg.LoadDir("../../examples/automata"))
	a, err := reg.Get(name)
	require.NoError(t, err)
	return a
}

func TestEvaluate_HasHello(t *testing.T) {
	a := load(t, "has_hello")
	r := runner.New()

	tests := []struct {
		input    string
		final    string
		accepted bool
		steps    int
	}{
		{"", "Q0", false, 0},
		{"hello", "Q5", true, 5},
		{"a hello a", "Q5", true, 9},
		{"hell o", "Q0", false, 6},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := r.Evaluate(context.Background(), a, tt.input)
			require.NoError(t, err)

			assert.Equal(t, "has_hello", res.Automaton)
			assert.Equal(t, "Q0", res.Start)
			assert.Equal(t, tt.final, res.Final)
			assert.Equal(t, tt.accepted, res.Accepted)
			assert.Equal(t, tt.steps, res.Steps)
			assert.Nil(t, res.Trace)
		})
	}
}

func TestEvaluate_Trace(t *testing.T) {
	a := load(t, "has_hello")

	res, err := runner.New(runner.WithTrace(true)).Evaluate(context.Background(), a, "xhel")
	require.NoError(t, err)
	assert.Equal(t, []string{"Q0", "Q0", "Q1", "Q2", "Q3"}, res.Trace)

	res, err = runner.New().Trace(context.Background(), a, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Q0"}, res.Trace)
}

func TestEvaluate_Composite(t *testing.T) {
	a := load(t, "safe_parity")

	res, err := runner.New().Evaluate(context.Background(), a, "A B A B")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, domain.VerdictAccepted, res.Verdict())
	assert.Equal(t, "(Q0, Even)", res.Final)

	res, err = runner.New().Evaluate(context.Background(), a, "A A B B")
	require.NoError(t, err)
	assert.Equal(t, domain.VerdictRejected, res.Verdict())
	assert.Equal(t, "(Q2, Even)", res.Final)
}

func TestEvaluate_UnknownSymbol(t *testing.T) {
	a := load(t, "even_ones")
	var results int
	r := runner.New(runner.WithHooks(domain.Hooks{
		OnResult: func(context.Context, *domain.ResultEvent) { results++ },
	}))

	_, err := r.Evaluate(context.Background(), a, "1 0 2 1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
	assert.Contains(t, err.Error(), `"2" at position 2`)
	assert.Zero(t, results)
}

func TestEvaluate_Cancelled(t *testing.T) {
	a := load(t, "has_hello")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New().Evaluate(ctx, a, "hello")
	assert.ErrorIs(t, err, context.Canceled)

	res, err := runner.New().Evaluate(ctx, a, "")
	require.NoError(t, err)
	assert.Equal(t, "Q0", res.Final)
}

func TestEvaluate_Hooks(t *testing.T) {
	a := load(t, "even_ones")

	var (
		steps   []domain.StepEvent
		results []*domain.Result
		second  int
	)
	r := runner.New(
		runner.WithHooks(domain.Hooks{
			OnStep: func(_ context.Context, e *domain.StepEvent) { steps = append(steps, *e) },
			OnResult: func(_ context.Context, e *domain.ResultEvent) {
				assert.Equal(t, domain.EventResult, e.Type)
				results = append(results, e.Result)
			},
		}),
		runner.WithHooks(domain.Hooks{
			OnStep: func(context.Context, *domain.StepEvent) { second++ },
		}),
	)

	res, err := r.Evaluate(context.Background(), a, "1 0 1")
	require.NoError(t, err)

	require.Len(t, steps, 3)
	assert.Equal(t, 3, second)
	assert.Equal(t, domain.EventStep, steps[0].Type)
	assert.Equal(t, "even_ones", steps[0].Automaton)
	assert.Equal(t, []string{"Even", "Odd", "Odd"}, []string{steps[0].From, steps[1].From, steps[2].From})
	assert.Equal(t, []string{"1", "0", "1"}, []string{steps[0].Input, steps[1].Input, steps[2].Input})
	assert.Equal(t, "Even", steps[2].To)
	assert.Equal(t, 2, steps[2].Index)
	assert.False(t, steps[0].Timestamp.IsZero())

	require.Len(t, results, 1)
	assert.Same(t, res, results[0])
	assert.True(t, res.Accepted)
}

func TestEvaluate_Logging(t *testing.T) {
	var buf bytes.Buffer
	a := load(t, "has_hello")
	r := runner.New(runner.WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug)))

	_, err := r.Evaluate(context.Background(), a, "hi")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=step automaton=has_hello index=0 from=Q0 input=h to=Q1")
	assert.Contains(t, out, "msg=\"evaluation finished\" automaton=has_hello steps=2 final=Q0 verdict=rejected")
}

func TestEvaluate_Concurrent(t *testing.T) {
	a := load(t, "hello_or_a")
	r := runner.New()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			input := "hello"
			if i%2 == 1 {
				input = "bcd"
			}
			res, err := r.Evaluate(context.Background(), a, input)
			assert.NoError(t, err)
			assert.Equal(t, i%2 == 0, res.Accepted)
		}()
	}
	wg.Wait()
}

func TestEvaluate_BooleanSymbols(t *testing.T) {
	def, err := definition.Decode(strings.NewReader(`
name: toggle
tokenizer: fields
alphabet: [false, true]
states: [Off, On]
accept: [On]
transitions:
  - {from: Off, on: true, to: On}
  - {from: On, on: true, to: Off}
  - {on: false, to: Off}
`), definition.FormatYAML)
	require.NoError(t, err)
	a, err := definition.Compile(def, nil)
	require.NoError(t, err)

	r := runner.New()
	res, err := r.Evaluate(context.Background(), a, "true")
	require.NoError(t, err)
	assert.Equal(t, "On", res.Final)
	assert.True(t, res.Accepted)

	res, err = r.Evaluate(context.Background(), a, "true false true true")
	require.NoError(t, err)
	assert.Equal(t, "Off", res.Final)

	_, err = r.Evaluate(context.Background(), a, "1")
	assert.ErrorIs(t, err, domain.ErrUnknownSymbol)
}
