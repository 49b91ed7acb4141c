package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	v, ok := s.engine.View()
	if !ok {
		return components.Center(theme.Hint.Render("No quiz in progress."), width, height)
	}

	cw := components.ContentWidth(width)
	var b strings.Builder

	counter := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d/%d", v.Index+1, v.Count))
	timer := lipgloss.NewStyle().Foreground(theme.Accent).
		Render("⏱ " + quiz.FormatElapsed(v.Elapsed))
	gap := cw - 8 - lipgloss.Width(counter) - lipgloss.Width(timer)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(counter + strings.Repeat(" ", gap) + timer + "\n\n")

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(cw - 8).
		Render(v.Question.Prompt)
	b.WriteString(prompt + "\n\n")
	b.WriteString(s.options.View() + "\n")

	answered := float64(v.AnsweredCount) / float64(v.Count)
	label := fmt.Sprintf("%d/%d answered", v.AnsweredCount, v.Count)
	b.WriteString(components.NewProgressBar(label, answered, false, cw-8).View() + "\n\n")

	b.WriteString(renderNav(v))

	if s.errMsg != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}

// renderNav shows which way the learner can move, and the submit prompt on
// the last question.
func renderNav(v quiz.View) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	on := lipgloss.NewStyle().Foreground(theme.Text)

	prev, next := dim.Render("◂ Previous"), dim.Render("Next ▸")
	if v.CanPrevious {
		prev = on.Render("◂ Previous")
	}
	if v.CanNext {
		next = on.Render("Next ▸")
	}
	nav := prev + "   " + next
	if v.IsLast {
		nav += "   " + theme.Banner.Render("s  Submit")
	}
	return nav
}
