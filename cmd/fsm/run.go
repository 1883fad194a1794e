package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/fsm/internal/presentation/tui"
	"github.com/aretw0/fsm/pkg/definition"
	"github.com/aretw0/fsm/pkg/domain"
	"github.com/aretw0/fsm/pkg/runner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type runOptions struct {
	trace    bool
	jsonMode bool
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run NAME [INPUT]",
		Short: "Evaluate an input against an automaton",
		Long: `Feeds INPUT to the named automaton and prints the verdict.

Without INPUT the input is read from stdin. When stdin is a terminal, every
line typed is evaluated on its own until EOF or "exit".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			automaton, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			r := runner.New(runner.WithLogger(a.logger), runner.WithTrace(opts.trace))
			ctx := cmd.Context()

			if len(args) == 2 {
				return evaluate(ctx, cmd.OutOrStdout(), r, automaton, args[1], opts)
			}

			in := cmd.InOrStdin()
			if isTerminal(in) {
				return interactive(ctx, in, cmd.OutOrStdout(), r, automaton, opts)
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			input := string(data)
			if automaton.Tokenizer() != definition.TokenizeLines {
				input = strings.TrimRight(input, "\r\n")
			}
			return evaluate(ctx, cmd.OutOrStdout(), r, automaton, input, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.trace, "trace", "t", false, "Print every visited state")
	cmd.Flags().BoolVar(&opts.jsonMode, "json", false, "Print the result as JSON")
	return cmd
}

func evaluate(ctx context.Context, w io.Writer, r *runner.Runner, a *definition.Automaton, input string, opts *runOptions) error {
	res, err := r.Evaluate(ctx, a, input)
	if err != nil {
		return err
	}
	printResult(w, res, opts)
	return nil
}

func printResult(w io.Writer, res *domain.Result, opts *runOptions) {
	if opts.jsonMode {
		_ = json.NewEncoder(w).Encode(res)
		return
	}
	tui.PrintResult(w, res)
}

// interactive evaluates each line read from in on its own. Unknown symbols are
// reported without ending the session.
func interactive(ctx context.Context, in io.Reader, w io.Writer, r *runner.Runner, a *definition.Automaton, opts *runOptions) error {
	fmt.Fprintf(w, "Evaluating %s. Type a line per input, \"exit\" to quit.\n", a.Name())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}

		line := scanner.Text()
		if line == "exit" || line == "quit" {
			return nil
		}

		res, err := r.Evaluate(ctx, a, line)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			continue
		}
		printResult(w, res, opts)
	}
}

// isTerminal reports whether stream is a terminal file.
func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
