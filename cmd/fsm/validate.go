package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [DIR]",
		Short: "Check the automaton definitions for consistency",
		Long: `Loads every definition, checks state and symbol references, checks that
each transition table is total and resolves compositions. Reports every
problem found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.dir = args[0]
			}
			reg, err := a.load(cmd.Context())
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d automata are valid! ✅\n", reg.Len())
			return nil
		},
	}
}
