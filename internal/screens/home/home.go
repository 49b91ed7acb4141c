package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/screens/history"
	sessionscreen "github.com/abhisek/quizzer/internal/screens/session"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/layout"
	"github.com/abhisek/quizzer/internal/ui/theme"
)

const title = "Q · U · I · Z · Z · E · R"

// HomeScreen lists the subjects and starts quizzes.
type HomeScreen struct {
	engine     *quiz.Engine
	menu       components.Menu
	subjectIDs []string
	errMsg     string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a HomeScreen with one menu entry per bank subject.
func New(engine *quiz.Engine) *HomeScreen {
	h := &HomeScreen{engine: engine}

	var items []components.MenuItem
	for _, subj := range engine.Bank().Subjects() {
		id := subj.ID
		h.subjectIDs = append(h.subjectIDs, id)
		items = append(items, components.MenuItem{
			Label:  subj.Title,
			Action: func() tea.Cmd { return h.start(id) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "History", Action: func() tea.Cmd {
			hs := history.New(engine.Bank(), engine.History(), "")
			return func() tea.Msg { return router.PushScreenMsg{Screen: hs} }
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) start(subjectID string) tea.Cmd {
	if err := h.engine.Start(subjectID); err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	qs := sessionscreen.New(h.engine)
	return func() tea.Msg { return router.PushScreenMsg{Screen: qs} }
}

// detail summarises a subject for its menu row.
func (h *HomeScreen) detail(subjectID string) string {
	subj, _ := h.engine.Bank().Subject(subjectID)
	d := fmt.Sprintf("%d questions", subj.QuestionCount())
	if hs := h.engine.History(); hs != nil {
		if best, ok := hs.Best(subjectID); ok {
			d += fmt.Sprintf(" · best %d%%", best.Percentage)
		}
	}
	return d
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	// Best scores change after every quiz, so details are computed per render.
	menu := h.menu
	menu.Items = make([]components.MenuItem, len(h.menu.Items))
	copy(menu.Items, h.menu.Items)
	for i, id := range h.subjectIDs {
		menu.Items[i].Detail = h.detail(id)
	}

	var sections []string
	sections = append(sections, theme.Title.Width(cw).Render(title))
	sections = append(sections, theme.Subtitle.Width(cw).Render("Pick a subject"))
	sections = append(sections, components.Card(menu.View(cw-10), cw))
	if h.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(h.errMsg))
	}

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}
