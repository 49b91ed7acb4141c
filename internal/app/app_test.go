package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzer/internal/bank"
	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/router"
	historyscreen "github.com/abhisek/quizzer/internal/screens/history"
	sessionscreen "github.com/abhisek/quizzer/internal/screens/session"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestModel(t *testing.T) (AppModel, *quiz.Engine) {
	t.Helper()
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	e := quiz.NewEngine(b, history.NewStore(history.NewMemoryStorage(), nil))
	m := newAppModel(e)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel), e
}

// send feeds msg to the model and runs any resulting command once.
func send(m AppModel, msg tea.Msg) AppModel {
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	if cmd != nil {
		if next := cmd(); next != nil {
			updated, _ = m.Update(next)
			m = updated.(AppModel)
		}
	}
	return m
}

func TestEscOnQuizGoesHome(t *testing.T) {
	m, e := newTestModel(t)
	if err := e.Start("dsa"); err != nil {
		t.Fatal(err)
	}
	m = send(m, router.PushScreenMsg{Screen: sessionscreen.New(e)})
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	m = send(m, specialKey(tea.KeyEscape))

	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1 after esc", m.router.Depth())
	}
	if e.State() != quiz.StateIdle {
		t.Errorf("state = %s, want idle", e.State())
	}
}

func TestEscOnHistoryPops(t *testing.T) {
	m, e := newTestModel(t)
	m = send(m, router.PushScreenMsg{Screen: historyscreen.New(e.Bank(), e.History(), "")})

	m = send(m, specialKey(tea.KeyEscape))

	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1 after esc", m.router.Depth())
	}
}

func TestEscAtHomeIsNoop(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, specialKey(tea.KeyEscape))
	if m.router.Depth() != 1 {
		t.Errorf("depth = %d, want 1", m.router.Depth())
	}
}

func TestViewRendersFrame(t *testing.T) {
	m, _ := newTestModel(t)
	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}
