package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzer/internal/bank"
	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/quiz"
	"github.com/abhisek/quizzer/internal/router"
	historyscreen "github.com/abhisek/quizzer/internal/screens/history"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newTestEngine(t *testing.T) (*quiz.Engine, *history.MemoryStorage, *fixedClock) {
	t.Helper()
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	mem := history.NewMemoryStorage()
	clock := &fixedClock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	e := quiz.NewEngine(b, history.NewStore(mem, nil), quiz.WithClock(clock.Now))
	return e, mem, clock
}

func startScreen(t *testing.T, subject string) (*SessionScreen, *quiz.Engine, *history.MemoryStorage, *fixedClock) {
	t.Helper()
	e, mem, clock := newTestEngine(t)
	if err := e.Start(subject); err != nil {
		t.Fatalf("start %s: %v", subject, err)
	}
	return New(e), e, mem, clock
}

func currentView(t *testing.T, e *quiz.Engine) quiz.View {
	t.Helper()
	v, ok := e.View()
	if !ok {
		t.Fatal("expected an active session")
	}
	return v
}

// runCmd executes cmd and returns the message it produces.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestDigitSelectsAnswer(t *testing.T) {
	s, e, _, _ := startScreen(t, "dsa")

	s.Update(keyPress('2'))

	if v := currentView(t, e); v.Selected != 1 {
		t.Errorf("selected = %d, want 1", v.Selected)
	}
	if s.options.Chosen != 1 {
		t.Errorf("option list chosen = %d, want 1", s.options.Chosen)
	}
}

func TestDigitPastOptionsShowsError(t *testing.T) {
	s, e, _, _ := startScreen(t, "dsa")

	s.Update(keyPress('9'))

	if v := currentView(t, e); v.Selected != quiz.Unanswered {
		t.Errorf("selected = %d, want unanswered", v.Selected)
	}
	if s.errMsg == "" {
		t.Error("expected an error message for an out-of-range option")
	}
}

func TestCursorThenEnterSelects(t *testing.T) {
	s, e, _, _ := startScreen(t, "dsa")

	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyEnter))

	if v := currentView(t, e); v.Selected != 2 {
		t.Errorf("selected = %d, want 2", v.Selected)
	}
}

func TestNavigation(t *testing.T) {
	s, e, _, _ := startScreen(t, "dsa")

	s.Update(keyPress('p'))
	if v := currentView(t, e); v.Index != 0 {
		t.Errorf("previous at first question moved to %d", v.Index)
	}
	if s.errMsg != "" {
		t.Errorf("unexpected error at lower bound: %s", s.errMsg)
	}

	s.Update(keyPress('n'))
	s.Update(keyPress('n'))
	if v := currentView(t, e); v.Index != 2 {
		t.Errorf("index = %d, want 2", v.Index)
	}

	s.Update(specialKey(tea.KeyLeft))
	if v := currentView(t, e); v.Index != 1 {
		t.Errorf("index = %d, want 1", v.Index)
	}
}

func TestAnswerSurvivesNavigation(t *testing.T) {
	s, e, _, _ := startScreen(t, "dsa")

	s.Update(keyPress('3'))
	s.Update(keyPress('n'))
	if s.options.Chosen != quiz.Unanswered {
		t.Errorf("second question should start unanswered, got %d", s.options.Chosen)
	}
	s.Update(keyPress('p'))

	if s.options.Chosen != 2 || s.options.Cursor != 2 {
		t.Errorf("option list = chosen %d cursor %d, want 2/2", s.options.Chosen, s.options.Cursor)
	}
	if v := currentView(t, e); v.Answers[0] != 2 {
		t.Errorf("answers[0] = %d, want 2", v.Answers[0])
	}
}

func TestSubmitShowsResults(t *testing.T) {
	s, e, mem, clock := startScreen(t, "dsa")

	s.Update(keyPress('2')) // dsa question 1 is correct at B
	clock.t = clock.t.Add(83 * time.Second)

	_, cmd := s.Update(keyPress('s'))
	msg, ok := runCmd(t, cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	results, ok := msg.Screen.(*ResultsScreen)
	if !ok {
		t.Fatalf("expected *ResultsScreen, got %T", msg.Screen)
	}

	if e.State() != quiz.StateCompleted {
		t.Errorf("state = %s, want completed", e.State())
	}
	rec := results.outcome.Record
	if rec.Score != 1 || rec.TotalQuestions != 10 || rec.Percentage != 10 || rec.ElapsedSeconds != 83 {
		t.Errorf("unexpected record %+v", rec)
	}
	if results.saveErr != nil {
		t.Errorf("unexpected save error: %v", results.saveErr)
	}
	if _, err := mem.Read(t.Context(), history.DocumentKey); err != nil {
		t.Errorf("expected history document to be written: %v", err)
	}

	view := results.View(100, 40)
	for _, want := range []string{"1/10", "10%", "01:23", "Attempt 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("results view missing %q", want)
		}
	}
}

func TestSubmitWithFailedSaveStillShowsResults(t *testing.T) {
	s, e, mem, _ := startScreen(t, "python")
	mem.SetWriteErr(errors.New("disk full"))

	_, cmd := s.Update(keyPress('s'))
	msg, ok := runCmd(t, cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	results := msg.Screen.(*ResultsScreen)

	if !errors.Is(results.saveErr, history.ErrPersistence) {
		t.Errorf("saveErr = %v, want persistence error", results.saveErr)
	}
	if e.State() != quiz.StateCompleted {
		t.Errorf("state = %s, want completed", e.State())
	}
	if view := results.View(100, 40); !strings.Contains(view, "could not be saved") {
		t.Error("expected a save warning on the results view")
	}
}

func TestTimerTicks(t *testing.T) {
	s, e, _, _ := startScreen(t, "ai")

	if s.Init() == nil {
		t.Fatal("expected Init to arm the timer")
	}

	gen := e.TimerGeneration()
	if _, cmd := s.Update(timerTickMsg{Gen: gen}); cmd == nil {
		t.Error("expected a live tick to re-arm")
	}

	s.Update(keyPress('s'))
	if _, cmd := s.Update(timerTickMsg{Gen: gen}); cmd != nil {
		t.Error("expected the timer to stop after submit")
	}
}

func TestTimerStopsOnHome(t *testing.T) {
	s, e, _, _ := startScreen(t, "cn")
	gen := e.TimerGeneration()

	msg := runCmd(t, s.Back())
	if _, ok := msg.(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", msg)
	}
	if e.State() != quiz.StateIdle {
		t.Errorf("state = %s, want idle", e.State())
	}
	if _, cmd := s.Update(timerTickMsg{Gen: gen}); cmd != nil {
		t.Error("expected the timer to stop after going home")
	}
}

func TestStaleTickFromPreviousSession(t *testing.T) {
	s, e, _, _ := startScreen(t, "dbms")
	old := e.TimerGeneration()

	if err := e.Start("dbms"); err != nil {
		t.Fatal(err)
	}
	if _, cmd := s.Update(timerTickMsg{Gen: old}); cmd != nil {
		t.Error("expected a tick from the previous session to be dropped")
	}
}

func TestSessionKeyHints(t *testing.T) {
	s, _, _, _ := startScreen(t, "dsa")

	hints := s.KeyHints()
	for _, h := range hints {
		if h.Description == "Previous" {
			t.Error("previous hint shown on the first question")
		}
	}

	s.Update(keyPress('n'))
	found := false
	for _, h := range s.KeyHints() {
		if h.Description == "Previous" {
			found = true
		}
	}
	if !found {
		t.Error("expected previous hint after moving forward")
	}
}

func TestSessionView(t *testing.T) {
	s, _, _, _ := startScreen(t, "dsa")

	view := s.View(100, 40)
	for _, want := range []string{"Question 1/10", "O(log n)", "00:00", "0/10 answered"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func submitted(t *testing.T) (*ResultsScreen, *quiz.Engine) {
	t.Helper()
	s, e, _, _ := startScreen(t, "dsa")
	_, cmd := s.Update(keyPress('s'))
	msg := runCmd(t, cmd).(router.ReplaceScreenMsg)
	return msg.Screen.(*ResultsScreen), e
}

func TestResultsRetry(t *testing.T) {
	r, e := submitted(t)

	_, cmd := r.Update(keyPress('r'))
	msg, ok := runCmd(t, cmd).(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", msg)
	}
	if _, ok := msg.Screen.(*SessionScreen); !ok {
		t.Errorf("expected *SessionScreen, got %T", msg.Screen)
	}
	v := currentView(t, e)
	if v.State != quiz.StateInProgress || v.SubjectID != "dsa" || v.AnsweredCount != 0 {
		t.Errorf("unexpected retry session %+v", v)
	}
}

func TestResultsHome(t *testing.T) {
	r, e := submitted(t)

	_, cmd := r.Update(keyPress('h'))
	if _, ok := runCmd(t, cmd).(router.PopToRootMsg); !ok {
		t.Error("expected PopToRootMsg")
	}
	if e.State() != quiz.StateIdle {
		t.Errorf("state = %s, want idle", e.State())
	}
}

func TestResultsHistory(t *testing.T) {
	r, _ := submitted(t)

	_, cmd := r.Update(keyPress('v'))
	msg, ok := runCmd(t, cmd).(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	hs, ok := msg.Screen.(*historyscreen.HistoryScreen)
	if !ok {
		t.Fatalf("expected history screen, got %T", msg.Screen)
	}
	if hs.Selected() != "dsa" {
		t.Errorf("history focus = %q, want dsa", hs.Selected())
	}
}

func TestResultsListsEveryAttempt(t *testing.T) {
	s, e, _, _ := startScreen(t, "dsa")
	s.Update(keyPress('s'))
	for i := 0; i < 6; i++ {
		if err := e.Retry(); err != nil {
			t.Fatal(err)
		}
		New(e).Update(keyPress('s'))
	}
	out, ok := e.LastOutcome()
	if !ok {
		t.Fatal("expected an outcome")
	}

	view := NewResults(e, out, nil).View(100, 60)
	if !strings.Contains(view, "Attempt 7") || !strings.Contains(view, "2 earlier") {
		t.Errorf("expected the latest attempts with an earlier-count, got:\n%s", view)
	}
	if strings.Contains(view, "Attempt 1 ") {
		t.Error("expected the oldest attempts to be collapsed")
	}
}
