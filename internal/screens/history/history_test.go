package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizzer/internal/bank"
	hist "github.com/abhisek/quizzer/internal/history"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testStore(t *testing.T) *hist.Store {
	t.Helper()
	store := hist.NewStore(hist.NewMemoryStorage(), nil)
	at := time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC)
	for i, pct := range []int{40, 70} {
		err := store.Append(context.Background(), "python", hist.AttemptRecord{
			Timestamp:      at.Add(time.Duration(i) * time.Hour),
			Score:          pct / 10,
			TotalQuestions: 10,
			Percentage:     pct,
			ElapsedSeconds: 65,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return store
}

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.Default()
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	return b
}

func TestAttemptLine(t *testing.T) {
	rec := hist.AttemptRecord{
		Timestamp:      time.Now(),
		Score:          7,
		TotalQuestions: 10,
		Percentage:     70,
		ElapsedSeconds: 125,
	}
	line := AttemptLine(3, rec)
	for _, want := range []string{"Attempt 3", "Time 02:05", "7/10 (70%)"} {
		if !strings.Contains(line, want) {
			t.Errorf("AttemptLine = %q, missing %q", line, want)
		}
	}
}

func TestFocusPreselectsSubject(t *testing.T) {
	s := New(testBank(t), testStore(t), "python")
	if s.Selected() != "python" {
		t.Errorf("selected = %q, want python", s.Selected())
	}

	s = New(testBank(t), testStore(t), "")
	if s.Selected() != "dsa" {
		t.Errorf("selected = %q, want first subject dsa", s.Selected())
	}
}

func TestNavigateSubjects(t *testing.T) {
	s := New(testBank(t), testStore(t), "")

	s.Update(keyPress('k'))
	if s.Selected() != "dsa" {
		t.Errorf("moved above first subject: %q", s.Selected())
	}
	s.Update(keyPress('j'))
	if s.Selected() != "python" {
		t.Errorf("selected = %q, want python", s.Selected())
	}
	for i := 0; i < 10; i++ {
		s.Update(keyPress('j'))
	}
	if s.Selected() != "cn" {
		t.Errorf("selected = %q, want last subject cn", s.Selected())
	}
}

func TestViewShowsAttemptsNewestFirst(t *testing.T) {
	s := New(testBank(t), testStore(t), "python")
	view := s.View(120, 30)

	second := strings.Index(view, "Attempt 2")
	first := strings.Index(view, "Attempt 1")
	if first < 0 || second < 0 {
		t.Fatalf("expected both attempts in view:\n%s", view)
	}
	if second > first {
		t.Error("expected the newest attempt first")
	}
}

func TestViewEmptySubject(t *testing.T) {
	s := New(testBank(t), testStore(t), "ai")
	if view := s.View(120, 30); !strings.Contains(view, NoAttempts) {
		t.Errorf("expected %q in view", NoAttempts)
	}
}

func TestHistoryOnlySubjectListed(t *testing.T) {
	store := hist.NewStore(hist.NewMemoryStorage(), nil)
	if err := store.Append(context.Background(), "retired", hist.AttemptRecord{Timestamp: time.Now(), TotalQuestions: 5}); err != nil {
		t.Fatal(err)
	}
	s := New(testBank(t), store, "retired")
	if s.Selected() != "retired" {
		t.Errorf("selected = %q, want retired", s.Selected())
	}
}
