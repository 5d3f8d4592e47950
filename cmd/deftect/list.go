package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Satria0ibnu/deftection-sub000/internal/config"
	"github.com/Satria0ibnu/deftection-sub000/internal/store"
)

func newListCmd(cfg func() *config.Config) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent scans, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.OpenSql(cfg().Store.Path)
			if err != nil {
				return err
			}
			defer st.Close()

			scans, err := st.ListScans(limit)
			if err != nil {
				return err
			}
			if len(scans) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scans recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tVERDICT\tSEVERITY\tREASON")
			for _, s := range scans {
				verdict := s.DetectedDefect
				if verdict == "" {
					verdict = "-"
				}
				severity := s.Severity
				if severity == "" {
					severity = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"),
					s.Source, verdict, severity, s.SelectionReason)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of scans to show (0 for all)")
	return cmd
}
