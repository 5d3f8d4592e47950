package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Satria0ibnu/deftection-sub000/internal/taxonomy"
)

func newClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "Print the class taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tax := taxonomy.Default()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND")
			for _, c := range tax.Classes() {
				kind := "defect"
				if tax.IsBackground(c.ID) {
					kind = "background"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, kind)
			}
			return w.Flush()
		},
	}
}
