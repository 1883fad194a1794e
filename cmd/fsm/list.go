package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available automata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range reg.Names() {
				automaton, err := reg.Get(name)
				if err != nil {
					return err
				}
				kind := "base"
				if def := automaton.Definition(); def.IsComposite() {
					kind = def.Compose.Op
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, kind, automaton.Description())
			}
			return tw.Flush()
		},
	}
}
