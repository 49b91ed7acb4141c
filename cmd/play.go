package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take a quiz in plain line mode",
	Long: `Take a quiz without the full-screen interface.

At the prompt type an option number or letter to answer, n for next,
p for previous, s to submit, and q to quit without saving.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		return playLines(cmd.Context(), d.engine, subject, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	playCmd.Flags().StringP("subject", "s", "", "Subject id to play (see `quizzer subjects`)")
	_ = playCmd.MarkFlagRequired("subject")
}

// playLines runs one quiz over a line-oriented reader and writer. Reaching
// the end of input abandons the quiz without recording it.
func playLines(ctx context.Context, e *quiz.Engine, subjectID string, in io.Reader, out io.Writer) error {
	if err := e.Start(subjectID); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		v, _ := e.View()
		printQuestion(out, v)

		if !sc.Scan() {
			e.GoHome()
			if err := sc.Err(); err != nil {
				return err
			}
			fmt.Fprintln(out, "\nQuiz abandoned.")
			return nil
		}

		input := strings.ToLower(strings.TrimSpace(sc.Text()))
		var err error
		switch input {
		case "":
			continue
		case "q", "quit":
			e.GoHome()
			fmt.Fprintln(out, "Quiz abandoned.")
			return nil
		case "s", "submit":
			return finishLines(ctx, e, out)
		case "n", "next":
			if !v.CanNext {
				fmt.Fprintln(out, "Already at the last question.")
			}
			err = e.Next()
		case "p", "prev", "previous":
			if !v.CanPrevious {
				fmt.Fprintln(out, "Already at the first question.")
			}
			err = e.Previous()
		default:
			idx, ok := parseOption(input)
			if !ok {
				fmt.Fprintf(out, "Unknown input %q.\n", input)
				continue
			}
			err = e.SelectAnswer(idx)
		}
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

// parseOption accepts a 1-based number or a single letter.
func parseOption(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, true
	}
	if len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		return int(s[0] - 'a'), true
	}
	return 0, false
}

func printQuestion(out io.Writer, v quiz.View) {
	fmt.Fprintf(out, "\n%s  Question %d/%d  [%s]\n", v.SubjectTitle, v.Index+1, v.Count, quiz.FormatElapsed(v.Elapsed))
	fmt.Fprintln(out, v.Question.Prompt)
	for i, opt := range v.Question.Options {
		mark := " "
		if i == v.Selected {
			mark = "*"
		}
		fmt.Fprintf(out, " %s %d) %s\n", mark, i+1, opt)
	}
	fmt.Fprint(out, "> ")
}

func finishLines(ctx context.Context, e *quiz.Engine, out io.Writer) error {
	res, err := e.Submit(ctx)
	if err != nil && !errors.Is(err, history.ErrPersistence) {
		return err
	}
	rec := res.Record
	fmt.Fprintf(out, "\nScore: %d/%d (%d%%)  Time %s\n", rec.Score, rec.TotalQuestions, rec.Percentage, quiz.FormatElapsed(rec.ElapsedSeconds))
	if err != nil {
		fmt.Fprintln(out, "Warning: this attempt could not be saved to history.")
	}
	if h := e.History(); h != nil {
		printAttempts(out, h.ListFor(res.SubjectID))
	}
	e.GoHome()
	return nil
}
