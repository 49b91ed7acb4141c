package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/abhisek/quizzer/internal/logger"
)

// DocumentKey is the storage key the whole history document lives under.
const DocumentKey = "quizAttempts"

// AttemptRecord summarizes one submitted quiz attempt. Records are never
// edited once appended.
type AttemptRecord struct {
	Timestamp      time.Time `json:"timestamp"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	ElapsedSeconds int       `json:"elapsedSeconds"`
}

// Document maps subject ID to that subject's attempts in chronological order.
type Document map[string][]AttemptRecord

// Encode serializes a history document.
func Encode(doc Document) ([]byte, error) {
	if doc == nil {
		doc = Document{}
	}
	return json.Marshal(doc)
}

// Decode parses a history document. A JSON null decodes to an empty document.
func Decode(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	for id, records := range doc {
		if len(records) == 0 {
			delete(doc, id)
		}
	}
	return doc, nil
}

// Store is the append-only, per-subject attempt log. Every append rewrites
// the full document to Storage.
type Store struct {
	mu       sync.RWMutex
	storage  Storage
	log      *logger.Logger
	attempts Document

	// loadErr is the last read failure. While set, the persisted document
	// is unknown and must not be overwritten.
	loadErr error
}

// NewStore returns an empty store over storage. Call Load to read what is
// already persisted.
func NewStore(storage Storage, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		storage:  storage,
		log:      log.With("component", "history"),
		attempts: Document{},
	}
}

// Open creates a store and loads the persisted document. A read failure is
// logged and the store starts empty; it is never fatal.
func Open(ctx context.Context, storage Storage, log *logger.Logger) *Store {
	s := NewStore(storage, log)
	if err := s.Load(ctx); err != nil {
		s.log.Warn("history unavailable, starting empty", "error", err)
	}
	return s
}

// Load replaces the in-memory history with the persisted document. A missing
// or corrupt document yields an empty store and a nil error. Only a storage
// I/O failure is returned, as a *PersistenceError, and the store is still
// left empty and usable.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts = Document{}
	doc, err := s.readLocked(ctx)
	if err != nil {
		return err
	}
	s.attempts = doc
	s.log.Debug("history loaded", "subjects", len(doc))
	return nil
}

// readLocked reads the persisted document and records the outcome in
// loadErr. Missing and corrupt documents read as empty. s.mu must be held.
func (s *Store) readLocked(ctx context.Context) (Document, error) {
	raw, err := s.storage.Read(ctx, DocumentKey)
	if errors.Is(err, ErrNoDocument) {
		s.loadErr = nil
		return Document{}, nil
	}
	if err != nil {
		s.loadErr = &PersistenceError{Op: "read", Key: DocumentKey, Err: err}
		return nil, s.loadErr
	}
	s.loadErr = nil

	doc, err := Decode(raw)
	if err != nil {
		s.log.Warn("discarding corrupt history document", "error", err, "bytes", len(raw))
		return Document{}, nil
	}
	return doc, nil
}

// recoverLocked retries a failed load and merges the persisted records in
// front of those appended since. s.mu must be held.
func (s *Store) recoverLocked(ctx context.Context) error {
	doc, err := s.readLocked(ctx)
	if err != nil {
		return err
	}
	for subject, records := range s.attempts {
		doc[subject] = append(doc[subject], records...)
	}
	s.attempts = doc
	s.log.Info("history recovered after failed load", "subjects", len(doc))
	return nil
}

// Append records an attempt for subjectID and persists the full document.
// The in-memory append always succeeds; a failed write is returned as a
// *PersistenceError. If the persisted document could not be read earlier,
// Append reads it again first and merges; while it stays unreadable nothing
// is written, so stored attempts are never replaced by a partial document.
func (s *Store) Append(ctx context.Context, subjectID string, record AttemptRecord) error {
	record.Timestamp = record.Timestamp.UTC().Round(0)

	// The lock covers the write so concurrent appends persist in order.
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[subjectID] = append(s.attempts[subjectID], record)

	if s.loadErr != nil {
		if err := s.recoverLocked(ctx); err != nil {
			s.log.Warn("history still unreadable, attempt kept in memory only", "error", err)
			return &PersistenceError{Op: "write", Key: DocumentKey, Err: fmt.Errorf("persisted history unreadable: %w", err)}
		}
	}

	raw, err := Encode(s.attempts)
	if err != nil {
		return &PersistenceError{Op: "write", Key: DocumentKey, Err: fmt.Errorf("encode: %w", err)}
	}
	if err := s.storage.Write(ctx, DocumentKey, raw); err != nil {
		return &PersistenceError{Op: "write", Key: DocumentKey, Err: err}
	}
	return nil
}

// ListFor returns subjectID's attempts oldest first. It returns an empty,
// non-nil slice when the subject has no history.
func (s *Store) ListFor(subjectID string) []AttemptRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.attempts[subjectID]
	if records == nil {
		return []AttemptRecord{}
	}
	return slices.Clone(records)
}

// Subjects returns the IDs of subjects with at least one attempt, sorted.
func (s *Store) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.attempts))
	for id := range s.attempts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Snapshot returns a deep copy of the whole history.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := make(Document, len(s.attempts))
	for id, records := range s.attempts {
		doc[id] = slices.Clone(records)
	}
	return doc
}

// Best returns the highest-percentage attempt for subjectID, preferring the
// earliest on ties.
func (s *Store) Best(subjectID string) (AttemptRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.attempts[subjectID]
	if len(records) == 0 {
		return AttemptRecord{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Percentage > best.Percentage {
			best = r
		}
	}
	return best, true
}
