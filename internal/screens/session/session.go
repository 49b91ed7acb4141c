package session

import (
	"context"
	"errors"
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/router"
	"github.com/abhisek/quizzer/internal/screen"
	"github.com/abhisek/quizzer/internal/ui/components"
	"github.com/abhisek/quizzer/internal/ui/layout"
)

// SessionScreen implements screen.Screen for the quiz in progress. It holds
// no quiz state of its own: every key becomes an engine command and the view
// is rebuilt from the engine.
type SessionScreen struct {
	engine  *quiz.Engine
	keys    keyMap
	options components.OptionList
	index   int
	errMsg  string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.BackHandler = (*SessionScreen)(nil)

// New creates a SessionScreen for the engine's current session.
func New(engine *quiz.Engine) *SessionScreen {
	s := &SessionScreen{
		engine: engine,
		keys:   defaultKeyMap(),
		index:  -1,
	}
	s.sync()
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	return tickCmd(s.engine.TimerGeneration())
}

func (s *SessionScreen) Title() string {
	if v, ok := s.engine.View(); ok {
		return v.SubjectTitle
	}
	return "Quiz"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFor(
		s.keys.Answer,
		s.keys.Previous,
		s.keys.Next,
		s.keys.Submit,
		s.keys.Home,
	)
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.engine.TimerActive(msg.Gen) {
			return s, tickCmd(msg.Gen)
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// Back abandons the quiz and returns to the home screen.
func (s *SessionScreen) Back() tea.Cmd {
	s.engine.GoHome()
	return func() tea.Msg { return router.PopToRootMsg{} }
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.engine.State() != quiz.StateInProgress {
		return s, nil
	}
	s.errMsg = ""

	var err error
	switch {
	case key.Matches(msg, s.keys.Submit):
		return s.submit()
	case key.Matches(msg, s.keys.Select):
		err = s.engine.SelectAnswer(s.options.Cursor)
	case key.Matches(msg, s.keys.Answer):
		n, _ := strconv.Atoi(msg.String())
		err = s.engine.SelectAnswer(n - 1)
	case key.Matches(msg, s.keys.Next):
		err = s.engine.Next()
	case key.Matches(msg, s.keys.Previous):
		err = s.engine.Previous()
	case key.Matches(msg, s.keys.Up, s.keys.Down):
		s.options, _ = s.options.Update(msg)
	}
	if err != nil {
		s.errMsg = err.Error()
	}
	s.sync()
	return s, nil
}

// submit scores the quiz and swaps this screen for the results. A failed
// history write still shows the results, with a warning.
func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	out, err := s.engine.Submit(context.Background())
	if err != nil && !errors.Is(err, history.ErrPersistence) {
		s.errMsg = err.Error()
		return s, nil
	}
	results := NewResults(s.engine, out, err)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: results} }
}

// sync rebuilds the option list when the question changes and refreshes
// which navigation keys apply.
func (s *SessionScreen) sync() {
	v, ok := s.engine.View()
	if !ok {
		return
	}
	if v.Index != s.index {
		s.options = components.NewOptionList(v.Question.Options, v.Selected)
		s.index = v.Index
	} else {
		s.options.Chosen = v.Selected
	}
	s.keys.Previous.SetEnabled(v.CanPrevious)
	s.keys.Next.SetEnabled(v.CanNext)
}
