package main

import (
	"fmt"

	"github.com/aretw0/fsm/internal/presentation/graph"
	"github.com/aretw0/fsm/pkg/runner"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "graph NAME",
		Short: "Export the automaton as a Mermaid diagram",
		Long: `Outputs a Mermaid flowchart of the automaton. With --input, the states
visited while reading the input are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			automaton, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			var overlay *graph.GraphOverlay
			if cmd.Flags().Changed("input") {
				res, err := runner.New(runner.WithLogger(a.logger)).Trace(cmd.Context(), automaton, input)
				if err != nil {
					return err
				}
				overlay = &graph.GraphOverlay{VisitedStates: res.Trace, CurrentState: res.Final}
			}

			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(automaton.Definition(), overlay))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Highlight the path taken on this input")
	return cmd
}
