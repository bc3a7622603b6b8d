package history

import (
	"context"
	"sync"
	"time"
)

// defaultMemoryCapacity bounds the in-memory history so long-running servers
// without a database do not grow unbounded
const defaultMemoryCapacity = 1000

// MemoryStore keeps scoring history in memory. It backs deployments that
// have history enabled but no database configured, and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []Entry
	nextID   int64
	capacity int
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory history store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:   1,
		capacity: defaultMemoryCapacity,
		now:      time.Now,
	}
}

// Save records a scoring run
func (s *MemoryStore) Save(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID
	entry.CreatedAt = s.now()
	s.nextID++

	s.entries = append(s.entries, *entry)
	if len(s.entries) > s.capacity {
		s.entries = s.entries[len(s.entries)-s.capacity:]
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.entries) {
		limit = len(s.entries)
	}

	result := make([]Entry, 0, limit)
	for i := len(s.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, s.entries[i])
	}
	return result, nil
}

// Close implements Store
func (s *MemoryStore) Close() error {
	return nil
}
