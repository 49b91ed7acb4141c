package session

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	historyscreen "github.com/abhisek/quizzer/internal/screens/history"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/layout"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

// maxListedAttempts caps the attempt list on the results card.
const maxListedAttempts = 5

// ResultsScreen shows the outcome of a submitted quiz.
type ResultsScreen struct {
	engine  *quiz.Engine
	outcome quiz.Outcome
	saveErr error
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)
var _ screen.BackHandler = (*ResultsScreen)(nil)

// NewResults creates a ResultsScreen. saveErr is the history write failure,
// if any; the score is shown regardless.
func NewResults(engine *quiz.Engine, outcome quiz.Outcome, saveErr error) *ResultsScreen {
	r := &ResultsScreen{
		engine:  engine,
		outcome: outcome,
		saveErr: saveErr,
	}
	r.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retry", Action: r.retry},
		{Label: "History", Action: r.showHistory},
		{Label: "Home", Action: r.Back},
	})
	return r
}

func (r *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultsScreen) Title() string {
	return "Results"
}

func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Retry"},
		{Key: "v", Description: "History"},
		{Key: "h", Description: "Home"},
		{Key: "Enter", Description: "Select"},
	}
}

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "r":
			return r, r.retry()
		case "v":
			return r, r.showHistory()
		case "h":
			return r, r.Back()
		}
	}
	var cmd tea.Cmd
	r.menu, cmd = r.menu.Update(msg)
	return r, cmd
}

// Back discards the finished quiz and returns to the home screen.
func (r *ResultsScreen) Back() tea.Cmd {
	r.engine.GoHome()
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (r *ResultsScreen) retry() tea.Cmd {
	if err := r.engine.Retry(); err != nil {
		r.errMsg = err.Error()
		return nil
	}
	next := New(r.engine)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (r *ResultsScreen) showHistory() tea.Cmd {
	hs := historyscreen.New(r.engine.Bank(), r.engine.History(), r.outcome.SubjectID)
	return func() tea.Msg { return router.PushScreenMsg{Screen: hs} }
}

func (r *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	rec := r.outcome.Record
	var b strings.Builder

	b.WriteString(theme.Title.Width(cw-8).Render("Quiz Complete!") + "\n")
	b.WriteString(theme.Subtitle.Width(cw-8).Render(r.outcome.SubjectTitle) + "\n\n")

	score := theme.ScoreStyle(rec.Percentage)
	b.WriteString(fmt.Sprintf("Score       %s\n", score.Render(fmt.Sprintf("%d/%d", rec.Score, rec.TotalQuestions))))
	b.WriteString(fmt.Sprintf("Percentage  %s\n", score.Render(fmt.Sprintf("%d%%", rec.Percentage))))
	b.WriteString(fmt.Sprintf("Time        %s\n", quiz.FormatElapsed(rec.ElapsedSeconds)))

	if r.saveErr != nil {
		b.WriteString("\n" + theme.Banner.Render("This attempt could not be saved to history.") + "\n")
	}

	b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Previous attempts") + "\n")
	b.WriteString(r.renderAttempts())

	b.WriteString("\n" + r.menu.View(0))
	if r.errMsg != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(r.errMsg))
	}

	return components.Center(components.Card(b.String(), cw), width, height)
}

func (r *ResultsScreen) renderAttempts() string {
	var recs []hist.AttemptRecord
	if h := r.engine.History(); h != nil {
		recs = h.ListFor(r.outcome.SubjectID)
	}
	if len(recs) == 0 {
		return theme.Hint.Render(historyscreen.NoAttempts) + "\n"
	}
	var b strings.Builder
	start := 0
	if len(recs) > maxListedAttempts {
		start = len(recs) - maxListedAttempts
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… %d earlier", start)) + "\n")
	}
	for i := start; i < len(recs); i++ {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(historyscreen.AttemptLine(i+1, recs[i])) + "\n")
	}
	return b.String()
}
