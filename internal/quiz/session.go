package quiz

import (
	"fmt"
	"slices"
	"time"

	"github.com/abhisek/quizzer/internal/bank"
	"github.com/abhisek/quizzer/internal/scoring"
)

// Unanswered marks a question with no selected option.
const Unanswered = scoring.Unanswered

// State is the lifecycle phase of a session.
type State int

const (
	StateIdle       State = iota // No quiz running
	StateInProgress              // Answering questions
	StateCompleted               // Submitted and scored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Session is the mutable state of one quiz attempt.
type Session struct {
	ID           string
	Subject      bank.Subject
	CurrentIndex int
	Answers      []int
	StartedAt    time.Time
	SubmittedAt  time.Time
	State        State
}

// newSession starts an attempt at subject with every answer unset.
func newSession(id string, subject bank.Subject, now time.Time) *Session {
	answers := make([]int, subject.QuestionCount())
	for i := range answers {
		answers[i] = Unanswered
	}
	return &Session{
		ID:        id,
		Subject:   subject,
		Answers:   answers,
		StartedAt: now,
		State:     StateInProgress,
	}
}

// QuestionCount returns the number of questions in the session's subject.
func (s *Session) QuestionCount() int {
	return len(s.Subject.Questions)
}

// LastIndex returns the index of the final question.
func (s *Session) LastIndex() int {
	return s.QuestionCount() - 1
}

// CurrentQuestion returns the question under the pointer.
func (s *Session) CurrentQuestion() bank.Question {
	return s.Subject.Questions[s.CurrentIndex]
}

// CurrentAnswer returns the selected option for the current question, or
// Unanswered.
func (s *Session) CurrentAnswer() int {
	return s.Answers[s.CurrentIndex]
}

// CanNext reports whether Next would move the pointer.
func (s *Session) CanNext() bool {
	return s.State == StateInProgress && s.CurrentIndex < s.LastIndex()
}

// CanPrevious reports whether Previous would move the pointer.
func (s *Session) CanPrevious() bool {
	return s.State == StateInProgress && s.CurrentIndex > 0
}

// IsLast reports whether the pointer is on the final question.
func (s *Session) IsLast() bool {
	return s.CurrentIndex == s.LastIndex()
}

// AnsweredCount returns how many questions have a selected option.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, a := range s.Answers {
		if a != Unanswered {
			n++
		}
	}
	return n
}

// Elapsed returns whole seconds since the session started, floored. After
// submit it is frozen at the submit time.
func (s *Session) Elapsed(now time.Time) int {
	end := now
	if s.State == StateCompleted {
		end = s.SubmittedAt
	}
	d := end.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}

func (s *Session) requireInProgress(op string) error {
	if s.State != StateInProgress {
		return fmt.Errorf("%s: session is %s: %w", op, s.State, ErrInvalidState)
	}
	return nil
}

// selectAnswer records optionIndex for the current question. Re-selecting
// overwrites; the last selection wins.
func (s *Session) selectAnswer(optionIndex int) error {
	if err := s.requireInProgress("select answer"); err != nil {
		return err
	}
	q := s.CurrentQuestion()
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("select answer: option %d not in [0, %d): %w", optionIndex, len(q.Options), ErrOutOfRange)
	}
	s.Answers[s.CurrentIndex] = optionIndex
	return nil
}

// next advances the pointer. At the last question it is a no-op.
func (s *Session) next() error {
	if err := s.requireInProgress("next"); err != nil {
		return err
	}
	if s.CurrentIndex < s.LastIndex() {
		s.CurrentIndex++
	}
	return nil
}

// previous moves the pointer back. At the first question it is a no-op.
func (s *Session) previous() error {
	if err := s.requireInProgress("previous"); err != nil {
		return err
	}
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
	return nil
}

// jump moves the pointer to index directly.
func (s *Session) jump(index int) error {
	if err := s.requireInProgress("jump"); err != nil {
		return err
	}
	if index < 0 || index > s.LastIndex() {
		return fmt.Errorf("jump: question %d not in [0, %d): %w", index, s.QuestionCount(), ErrOutOfRange)
	}
	s.CurrentIndex = index
	return nil
}

// complete scores the session and freezes it.
func (s *Session) complete(now time.Time) (scoring.Result, error) {
	if err := s.requireInProgress("submit"); err != nil {
		return scoring.Result{}, err
	}
	res := scoring.Score(s.Answers, s.Subject.Questions)
	s.SubmittedAt = now
	s.State = StateCompleted
	return res, nil
}

// View is a read-only copy of a session for renderers.
type View struct {
	SessionID     string
	SubjectID     string
	SubjectTitle  string
	State         State
	Index         int
	Count         int
	Question      bank.Question
	Selected      int
	Answers       []int
	CanNext       bool
	CanPrevious   bool
	IsLast        bool
	AnsweredCount int
	Elapsed       int
}

// view snapshots s at now.
func (s *Session) view(now time.Time) View {
	return View{
		SessionID:     s.ID,
		SubjectID:     s.Subject.ID,
		SubjectTitle:  s.Subject.Title,
		State:         s.State,
		Index:         s.CurrentIndex,
		Count:         s.QuestionCount(),
		Question:      s.CurrentQuestion(),
		Selected:      s.CurrentAnswer(),
		Answers:       slices.Clone(s.Answers),
		CanNext:       s.CanNext(),
		CanPrevious:   s.CanPrevious(),
		IsLast:        s.IsLast(),
		AnsweredCount: s.AnsweredCount(),
		Elapsed:       s.Elapsed(now),
	}
}
