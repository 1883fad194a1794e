/*
Package observability exports evaluation metrics to Prometheus.

Metrics are fed by the runner through domain.Hooks, so the core machines stay
free of any instrumentation:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	r := runner.New(runner.WithHooks(metrics.Hooks()))
*/
package observability
