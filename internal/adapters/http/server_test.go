package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
	"github.com/aretw0/fsm/pkg/observability"
	"github.com/aretw0/fsm/pkg/registry"
	"github.com/aretw0/fsm/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	automata := registry.NewRegistry()
	require.NoError(t, automata.LoadDir("../../../examples/automata"))

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	return NewHandler(automata, runner.New(runner.WithHooks(metrics.Hooks())), append([]Option{WithGatherer(reg)}, opts...)...)
}

func serve(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequestWithContext(context.Background(), method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := serve(t, newTestHandler(t), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	rr := serve(t, newTestHandler(t), http.MethodGet, "/info", "")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "fsm-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, "0.1.0", resp["api_version"])
}

func TestListAutomata(t *testing.T) {
	rr := serve(t, newTestHandler(t), http.MethodGet, "/automata", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var names []string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &names))
	assert.Contains(t, names, "has_hello")
	assert.Contains(t, names, "safe_parity")
}

func TestGetAutomaton(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(t, handler, http.MethodGet, "/automata/hello_or_a", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var def definition.Definition
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &def))
	assert.Equal(t, "hello_or_a", def.Name)
	require.NotNil(t, def.Compose)
	assert.Equal(t, definition.OpOr, def.Compose.Op)

	rr = serve(t, handler, http.MethodGet, "/automata/missing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRunAutomaton(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		body     string
		status   int
		accepted bool
		final    string
	}{
		{"accepted", "/automata/has_hello/run", `{"input": "a hello a"}`, http.StatusOK, true, "Q5"},
		{"rejected", "/automata/has_hello/run", `{"input": "hell o"}`, http.StatusOK, false, "Q0"},
		{"empty input", "/automata/has_hello/run", `{"input": ""}`, http.StatusOK, false, "Q0"},
		{"composite", "/automata/safe_parity/run", `{"input": "A B A B"}`, http.StatusOK, true, "(Q0, Even)"},
		{"unknown automaton", "/automata/missing/run", `{"input": "x"}`, http.StatusNotFound, false, ""},
		{"unknown symbol", "/automata/even_ones/run", `{"input": "1 2"}`, http.StatusBadRequest, false, ""},
		{"malformed body", "/automata/has_hello/run", `{"input": `, http.StatusBadRequest, false, ""},
		{"unknown field", "/automata/has_hello/run", `{"text": "hello"}`, http.StatusBadRequest, false, ""},
		{"missing input", "/automata/has_hello/run", `{}`, http.StatusBadRequest, false, ""},
	}

	handler := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(t, handler, http.MethodPost, tt.path, tt.body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())

			if tt.status != http.StatusOK {
				var resp ErrorResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Error)
				return
			}

			var res domain.Result
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
			assert.Equal(t, tt.accepted, res.Accepted)
			assert.Equal(t, tt.final, res.Final)
			assert.Nil(t, res.Trace)
		})
	}
}

func TestRunAutomaton_BodyTooLarge(t *testing.T) {
	handler := newTestHandler(t, WithMaxBodyBytes(64))

	rr := serve(t, handler, http.MethodPost, "/automata/has_hello/run", `{"input": "`+strings.Repeat("hello ", 20)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "request body too large")

	rr = serve(t, handler, http.MethodPost, "/automata/has_hello/run", `{"input": "hello"}`)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRunAutomaton_Trace(t *testing.T) {
	rr := serve(t, newTestHandler(t), http.MethodPost, "/automata/even_ones/run", `{"input": "1 1", "trace": true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res domain.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, []string{"Even", "Odd", "Even"}, res.Trace)
	assert.Equal(t, 2, res.Steps)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestHandler(t)
	serve(t, handler, http.MethodPost, "/automata/has_hello/run", `{"input": "hello"}`)

	rr := serve(t, handler, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `fsm_runs_total{automaton="has_hello",verdict="accepted"} 1`)
	assert.Contains(t, rr.Body.String(), `fsm_steps_total{automaton="has_hello"} 5`)
}

func TestSpec_MatchesRoutes(t *testing.T) {
	doc, err := Spec(context.Background())
	require.NoError(t, err)

	routes := map[string]bool{}
	walk := func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes[method+" "+route] = true
		return nil
	}
	require.NoError(t, chi.Walk(newTestHandler(t).(chi.Routes), walk))

	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			assert.True(t, routes[method+" "+path], "%s %s is documented but not routed", method, path)
		}
	}
}

func TestGetSpec(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(t, handler, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "operationId: runAutomaton")

	rr = serve(t, handler, http.MethodGet, "/swagger", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "SwaggerUIBundle")
}
