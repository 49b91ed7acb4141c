package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/history"
	historyscreen "github.com/abhisek/quizzer/internal/screens/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		out := cmd.OutOrStdout()
		if subject != "" {
			if !d.bank.Has(subject) && len(d.history.ListFor(subject)) == 0 {
				return fmt.Errorf("unknown subject %q", subject)
			}
			printAttempts(out, d.history.ListFor(subject))
			return nil
		}

		ids := d.history.Subjects()
		if len(ids) == 0 {
			fmt.Fprintln(out, historyscreen.NoAttempts)
			return nil
		}
		for _, id := range ids {
			title := id
			if s, ok := d.bank.Subject(id); ok {
				title = s.Title
			}
			fmt.Fprintf(out, "%s (%s)\n", title, id)
			printAttempts(out, d.history.ListFor(id))
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("subject", "s", "", "Only show attempts for this subject id")
}

func printAttempts(out io.Writer, recs []history.AttemptRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(out, historyscreen.NoAttempts)
		return
	}
	for i, rec := range recs {
		fmt.Fprintln(out, "  "+historyscreen.AttemptLine(i+1, rec))
	}
}
