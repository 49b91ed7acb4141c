package history

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrNoDocument is returned by Storage.Read when nothing is stored under key.
var ErrNoDocument = errors.New("document not found")

// Storage reads and writes whole documents by key.
type Storage interface {
	// Read returns the document stored under key, or ErrNoDocument.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the document stored under key.
	Write(ctx context.Context, key string, doc []byte) error
}

// MemoryStorage is an in-process Storage, used in tests and when no
// database is configured.
type MemoryStorage struct {
	mu   sync.Mutex
	docs map[string][]byte

	// ReadErr and WriteErr, when set, are returned instead of touching docs.
	ReadErr  error
	WriteErr error
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{docs: make(map[string][]byte)}
}

func (m *MemoryStorage) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	doc, ok := m.docs[key]
	if !ok {
		return nil, ErrNoDocument
	}
	return slices.Clone(doc), nil
}

func (m *MemoryStorage) Write(_ context.Context, key string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.docs[key] = slices.Clone(doc)
	return nil
}

// SetReadErr changes the read failure under the storage lock.
func (m *MemoryStorage) SetReadErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadErr = err
}

// SetWriteErr changes the write failure under the storage lock.
func (m *MemoryStorage) SetWriteErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteErr = err
}
