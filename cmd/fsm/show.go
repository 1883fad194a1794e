package main

import (
	"fmt"

	"github.com/aretw0/fsm/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Describe an automaton",
		Long:  `Prints the states, alphabet and transition table of an automaton as markdown, rendered for the terminal when stdout is one.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			automaton, err := reg.Get(args[0])
			if err != nil {
				return err
			}

			md := tui.Describe(automaton.Definition())
			if raw || !isTerminal(cmd.OutOrStdout()) {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}

			out, err := tui.NewRenderer()(md)
			if err != nil {
				return fmt.Errorf("failed to render description: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print plain markdown")
	return cmd
}
