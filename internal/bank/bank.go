package bank

import "slices"

// Question is a single multiple-choice question.
type Question struct {
	Prompt             string   `json:"prompt" yaml:"prompt"`
	Options            []string `json:"options" yaml:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex" yaml:"correctOptionIndex"`
}

// IsCorrect reports whether optionIndex is this question's correct option.
func (q Question) IsCorrect(optionIndex int) bool {
	return optionIndex == q.CorrectOptionIndex
}

// Subject is a named topic with its own ordered question list.
type Subject struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// QuestionCount returns the number of questions in the subject.
func (s Subject) QuestionCount() int {
	return len(s.Questions)
}

// clone returns a deep copy so callers can't reach the bank's backing arrays.
func (s Subject) clone() Subject {
	qs := make([]Question, len(s.Questions))
	for i, q := range s.Questions {
		qs[i] = Question{
			Prompt:             q.Prompt,
			Options:            slices.Clone(q.Options),
			CorrectOptionIndex: q.CorrectOptionIndex,
		}
	}
	return Subject{ID: s.ID, Title: s.Title, Questions: qs}
}

// Bank is the read-only catalog of subjects. It is built once by Parse or
// Load and never mutated afterwards.
type Bank struct {
	version  string
	subjects []Subject
	byID     map[string]int
}

// newBank indexes subjects by ID, preserving document order for display.
func newBank(version string, subjects []Subject) *Bank {
	b := &Bank{
		version:  version,
		subjects: make([]Subject, len(subjects)),
		byID:     make(map[string]int, len(subjects)),
	}
	for i, s := range subjects {
		b.subjects[i] = s.clone()
		b.byID[s.ID] = i
	}
	return b
}

// Version returns the document version the bank was loaded from.
func (b *Bank) Version() string {
	return b.version
}

// Subject returns the subject with the given ID.
func (b *Bank) Subject(id string) (Subject, bool) {
	i, ok := b.byID[id]
	if !ok {
		return Subject{}, false
	}
	return b.subjects[i].clone(), true
}

// Has reports whether the bank contains a subject with the given ID.
func (b *Bank) Has(id string) bool {
	_, ok := b.byID[id]
	return ok
}

// Subjects returns all subjects in document order.
func (b *Bank) Subjects() []Subject {
	out := make([]Subject, len(b.subjects))
	for i, s := range b.subjects {
		out[i] = s.clone()
	}
	return out
}

// IDs returns all subject IDs in document order.
func (b *Bank) IDs() []string {
	ids := make([]string, len(b.subjects))
	for i, s := range b.subjects {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of subjects.
func (b *Bank) Len() int {
	return len(b.subjects)
}
