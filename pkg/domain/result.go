package domain

// Verdict is the outcome of an evaluation, used as a metric label.
type Verdict string

const (
	VerdictAccepted Verdict = "accepted"
	VerdictRejected Verdict = "rejected"
)

// Result captures the final configuration of an automaton after a run.
type Result struct {
	Automaton string   `json:"automaton"`
	Start     string   `json:"start"`
	Final     string   `json:"final"`
	Accepted  bool     `json:"accepted"`
	Steps     int      `json:"steps"`
	Trace     []string `json:"trace,omitempty"`
}

// Verdict returns the result as a Verdict.
func (r *Result) Verdict() Verdict {
	if r.Accepted {
		return VerdictAccepted
	}
	return VerdictRejected
}
