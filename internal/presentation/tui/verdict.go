package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/fsm/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintResult writes the verdict of res, coloured when w supports it, followed
// by the final state and, if recorded, the trace.
func PrintResult(w io.Writer, res *domain.Result) {
	out := termenv.NewOutput(w)

	verdict := out.String(strings.ToUpper(string(res.Verdict()))).Bold()
	if res.Accepted {
		verdict = verdict.Foreground(out.Color("2"))
	} else {
		verdict = verdict.Foreground(out.Color("1"))
	}

	fmt.Fprintf(w, "%s %s after %d steps\n", verdict, res.Final, res.Steps)
	if len(res.Trace) > 0 {
		fmt.Fprintln(w, out.String(strings.Join(res.Trace, " -> ")).Faint())
	}
}
