package recordings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store in process memory.
// Used when no MongoDB URI is configured, and in tests.
// Contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]Recording
	order []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]Recording),
	}
}

// Save persists a recording and returns its ID.
func (s *MemoryStore) Save(ctx context.Context, rec *Recording) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.byID[rec.ID] = *rec
	return rec.ID, nil
}

// List returns all recordings in insertion order.
func (s *MemoryStore) List(ctx context.Context) ([]Recording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Recording, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

// Get returns the recording with the given ID, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Recording, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Health always reports healthy.
func (s *MemoryStore) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Verify MemoryStore implements Store at compile time.
var _ Store = (*MemoryStore)(nil)
