package quiz

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizzer/internal/bank"
	"github.com/abhisek/quizzer/internal/history"
	"github.com/abhisek/quizzer/internal/logger"
)

// Outcome is what a submit produces: the persisted record plus the detail a
// results screen needs.
type Outcome struct {
	SessionID    string
	SubjectID    string
	SubjectTitle string
	Record       history.AttemptRecord
	Answers      []int
	Correct      []bool
}

// Engine owns the single active session and runs the quiz flow against a
// question bank and a history store. It is driven by one caller at a time.
type Engine struct {
	bank    *bank.Bank
	history *history.Store
	log     *logger.Logger
	now     func() time.Time
	newID   func() string

	session     *Session
	lastSubject string
	last        *Outcome
	timerGen    uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the engine logger. A nil logger is ignored.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithIDGenerator overrides how session IDs are minted.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine creates an idle engine. hist may be nil, in which case submits
// are scored but not recorded.
func NewEngine(b *bank.Bank, hist *history.Store, opts ...Option) *Engine {
	e := &Engine{
		bank:    b,
		history: hist,
		log:     logger.Nop(),
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With("component", "quiz")
	return e
}

// Bank returns the question bank.
func (e *Engine) Bank() *bank.Bank { return e.bank }

// History returns the history store, possibly nil.
func (e *Engine) History() *history.Store { return e.history }

// State returns the current lifecycle state.
func (e *Engine) State() State {
	if e.session == nil {
		return StateIdle
	}
	return e.session.State
}

// Start begins a fresh attempt at subjectID, replacing any current session.
// An unknown subject leaves the engine untouched and returns ErrNotFound.
func (e *Engine) Start(subjectID string) error {
	subject, ok := e.bank.Subject(subjectID)
	if !ok {
		return fmt.Errorf("start subject %q: %w", subjectID, ErrNotFound)
	}

	e.session = newSession(e.newID(), subject, e.now())
	e.lastSubject = subjectID
	e.last = nil
	e.timerGen++

	e.log.Debug("session started",
		"session_id", e.session.ID,
		"subject", subjectID,
		"questions", subject.QuestionCount(),
	)
	return nil
}

// Retry starts a new attempt at the most recently started subject.
func (e *Engine) Retry() error {
	if e.lastSubject == "" {
		return fmt.Errorf("retry: no previous subject: %w", ErrInvalidState)
	}
	return e.Start(e.lastSubject)
}

func (e *Engine) active(op string) (*Session, error) {
	if e.session == nil {
		return nil, fmt.Errorf("%s: no active session: %w", op, ErrInvalidState)
	}
	return e.session, nil
}

// SelectAnswer records optionIndex for the current question.
func (e *Engine) SelectAnswer(optionIndex int) error {
	s, err := e.active("select answer")
	if err != nil {
		return err
	}
	return s.selectAnswer(optionIndex)
}

// Next moves to the following question; a no-op on the last one.
func (e *Engine) Next() error {
	s, err := e.active("next")
	if err != nil {
		return err
	}
	return s.next()
}

// Previous moves to the preceding question; a no-op on the first one.
func (e *Engine) Previous() error {
	s, err := e.active("previous")
	if err != nil {
		return err
	}
	return s.previous()
}

// Jump moves straight to question index.
func (e *Engine) Jump(index int) error {
	s, err := e.active("jump")
	if err != nil {
		return err
	}
	return s.jump(index)
}

// Submit scores the session and appends the attempt to history as one step.
// The session becomes Completed and the elapsed timer stops. If the history
// write fails the outcome is still returned, alongside a
// *history.PersistenceError.
func (e *Engine) Submit(ctx context.Context) (Outcome, error) {
	s, err := e.active("submit")
	if err != nil {
		return Outcome{}, err
	}

	now := e.now()
	res, err := s.complete(now)
	if err != nil {
		return Outcome{}, err
	}
	e.timerGen++

	out := Outcome{
		SessionID:    s.ID,
		SubjectID:    s.Subject.ID,
		SubjectTitle: s.Subject.Title,
		Record: history.AttemptRecord{
			Timestamp:      now,
			Score:          res.Score,
			TotalQuestions: res.TotalQuestions,
			Percentage:     res.Percentage,
			ElapsedSeconds: s.Elapsed(now),
		},
		Answers: slices.Clone(s.Answers),
		Correct: res.Correct,
	}
	e.last = &out

	log := e.log.With("session_id", s.ID, "subject", s.Subject.ID)
	log.Info("quiz submitted",
		"score", res.Score,
		"total", res.TotalQuestions,
		"percentage", res.Percentage,
		"elapsed_secs", out.Record.ElapsedSeconds,
	)

	if e.history == nil {
		return out, nil
	}
	if err := e.history.Append(ctx, s.Subject.ID, out.Record); err != nil {
		log.Warn("attempt not saved", "error", err)
		return out, err
	}
	return out, nil
}

// GoHome discards any session and stops the elapsed timer.
func (e *Engine) GoHome() {
	if e.session != nil {
		e.log.Debug("session discarded", "session_id", e.session.ID, "state", e.session.State.String())
	}
	e.session = nil
	e.last = nil
	e.timerGen++
}

// View returns a snapshot of the current session, or false when idle.
func (e *Engine) View() (View, bool) {
	if e.session == nil {
		return View{}, false
	}
	return e.session.view(e.now()), true
}

// LastOutcome returns the result of the most recent submit in this session.
func (e *Engine) LastOutcome() (Outcome, bool) {
	if e.last == nil {
		return Outcome{}, false
	}
	return *e.last, true
}

// Elapsed returns whole seconds since the current session started.
func (e *Engine) Elapsed() int {
	if e.session == nil {
		return 0
	}
	return e.session.Elapsed(e.now())
}

// TimerGeneration identifies the current elapsed-time timer. It changes on
// every start, submit, and return home, so a tick tagged with an older
// generation belongs to a stopped timer and must be dropped.
func (e *Engine) TimerGeneration() uint64 {
	return e.timerGen
}

// TimerActive reports whether a tick tagged gen should update the display
// and re-arm.
func (e *Engine) TimerActive(gen uint64) bool {
	return gen == e.timerGen && e.State() == StateInProgress
}
