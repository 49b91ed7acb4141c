package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/bank"
	hist "github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/layout"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

// NoAttempts is shown for a subject without recorded attempts.
const NoAttempts = "No previous attempts."

// AttemptLine formats the n-th (1-based) attempt of a subject.
func AttemptLine(n int, rec hist.AttemptRecord) string {
	return fmt.Sprintf("Attempt %d · %s · Time %s · %d/%d (%d%%)",
		n,
		rec.Timestamp.Local().Format("Jan 02, 2006 15:04"),
		quiz.FormatElapsed(rec.ElapsedSeconds),
		rec.Score, rec.TotalQuestions, rec.Percentage,
	)
}

type subjectEntry struct {
	ID    string
	Title string
}

// HistoryScreen browses past attempts subject by subject.
type HistoryScreen struct {
	store    *hist.Store
	subjects []subjectEntry
	selected int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen listing the bank's subjects, plus any subject
// that only exists in history. focus preselects a subject and may be empty.
func New(b *bank.Bank, store *hist.Store, focus string) *HistoryScreen {
	s := &HistoryScreen{store: store}
	seen := make(map[string]bool)
	if b != nil {
		for _, subj := range b.Subjects() {
			s.subjects = append(s.subjects, subjectEntry{ID: subj.ID, Title: subj.Title})
			seen[subj.ID] = true
		}
	}
	if store != nil {
		for _, id := range store.Subjects() {
			if !seen[id] {
				s.subjects = append(s.subjects, subjectEntry{ID: id, Title: id})
			}
		}
	}
	for i, e := range s.subjects {
		if e.ID == focus {
			s.selected = i
		}
	}
	return s
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Subject"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.subjects)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

// Selected returns the id of the highlighted subject.
func (s *HistoryScreen) Selected() string {
	if s.selected < len(s.subjects) {
		return s.subjects[s.selected].ID
	}
	return ""
}

func (s *HistoryScreen) attempts(id string) []hist.AttemptRecord {
	if s.store == nil {
		return nil
	}
	return s.store.ListFor(id)
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.subjects) == 0 {
		return components.Center(theme.Hint.Render(NoAttempts), width, height)
	}

	var list strings.Builder
	for i, e := range s.subjects {
		label := fmt.Sprintf("%s (%d)", e.Title, len(s.attempts(e.ID)))
		if i == s.selected {
			list.WriteString(theme.Selected.Render("▸ "+label) + "\n")
		} else {
			list.WriteString(theme.Unselected.Render("  "+label) + "\n")
		}
	}
	listWidth := width / 3
	left := lipgloss.NewStyle().
		Width(listWidth).
		Padding(1, 1).
		Render(list.String())

	id := s.Selected()
	recs := s.attempts(id)
	var detail strings.Builder
	detail.WriteString(theme.Title.Render(s.subjects[s.selected].Title) + "\n\n")
	if len(recs) == 0 {
		detail.WriteString(theme.Hint.Render(NoAttempts))
	}
	// Newest first, so the latest attempts survive a short terminal.
	for i := len(recs) - 1; i >= 0; i-- {
		line := AttemptLine(i+1, recs[i])
		detail.WriteString(theme.ScoreStyle(recs[i].Percentage).Render(line) + "\n")
	}
	right := lipgloss.NewStyle().
		Width(width-listWidth).
		Height(height).
		Padding(1, 2).
		Render(detail.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
