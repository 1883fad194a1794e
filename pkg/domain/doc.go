/*
Package domain contains the shared vocabulary of the fsm tooling layers.

It defines the sentinel errors raised by transition tables and returned by the
definition, registry and runner packages, the evaluation Result, and the
lifecycle Hooks used for observability. It has no dependencies besides the
standard library.

# Key Entities

  - Result: the final state, verdict and optional trace of one evaluation.
  - StepEvent / ResultEvent: payloads delivered to Hooks.
  - Hooks: optional callbacks fired by the runner.
*/
package domain
