package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List the available subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tQUESTIONS\tATTEMPTS\tBEST")
		for _, s := range d.bank.Subjects() {
			best := "-"
			if rec, ok := d.history.Best(s.ID); ok {
				best = fmt.Sprintf("%d%%", rec.Percentage)
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", s.ID, s.Title, s.QuestionCount(), len(d.history.ListFor(s.ID)), best)
		}
		return w.Flush()
	},
}
