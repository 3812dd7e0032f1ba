// Package storage provides submission history implementations.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/hammamikhairi/ottocart/internal/domain"
	"github.com/hammamikhairi/ottocart/internal/logger"
)

// Compile-time interface check.
var _ domain.HistoryStore = (*MemoryStore)(nil)

// Option configures the store.
type Option func(*MemoryStore)

// WithCapacity caps how many submissions are kept; older ones are evicted.
func WithCapacity(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// MemoryStore is an in-memory history. Safe for concurrent access.
type MemoryStore struct {
	mu       sync.RWMutex
	order    []string
	byID     map[string]*domain.Submission
	capacity int
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory history.
func NewMemoryStore(log *logger.Logger, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:     make(map[string]*domain.Submission),
		capacity: 100,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record stores a finished submission. A request id can only be recorded
// once.
func (s *MemoryStore) Record(ctx context.Context, sub *domain.Submission) error {
	if sub.RequestID == "" {
		return fmt.Errorf("record: empty request id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[sub.RequestID]; ok {
		return fmt.Errorf("record %s: already recorded", sub.RequestID)
	}

	s.log.Debug("recording %s (workflow=%s, outcome=%s)", sub.RequestID, sub.Workflow, sub.Outcome)
	s.byID[sub.RequestID] = sub
	s.order = append(s.order, sub.RequestID)

	for len(s.order) > s.capacity {
		evict := s.order[0]
		s.order = s.order[1:]
		delete(s.byID, evict)
		s.log.Debug("evicted %s", evict)
	}
	return nil
}

// Get retrieves a submission by request id.
func (s *MemoryStore) Get(ctx context.Context, requestID string) (*domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.byID[requestID]
	if !ok {
		s.log.Debug("submission not found: %s", requestID)
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

// Recent returns up to n submissions, newest first. n <= 0 returns all.
func (s *MemoryStore) Recent(ctx context.Context, n int) ([]*domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.order) {
		n = len(s.order)
	}
	out := make([]*domain.Submission, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.byID[s.order[i]])
	}
	return out, nil
}
