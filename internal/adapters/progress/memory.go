// Package progress provides session-keyed progress stores with expiring records.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// MemoryStore keeps progress records in process memory.
// Expired records are dropped when read and by Sweep.
type MemoryStore struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	records map[domain.SessionID]domain.ProgressRecord
}

var _ ports.ProgressStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		clock:   clock,
		records: make(map[domain.SessionID]domain.ProgressRecord),
	}
}

// Set overwrites the session's record. A non-positive ttl uses the default lifetime.
func (s *MemoryStore) Set(_ context.Context, session domain.SessionID, percent float64, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = domain.DefaultProgressTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[session] = domain.ProgressRecord{
		Session:   session,
		Percent:   percent,
		ExpiresAt: s.clock.Now().Add(ttl),
	}
	return nil
}

// Get returns the session's percent if a live record exists.
func (s *MemoryStore) Get(_ context.Context, session domain.SessionID) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[session]
	if !ok {
		return 0, false, nil
	}
	if rec.Expired(s.clock.Now()) {
		delete(s.records, session)
		return 0, false, nil
	}
	return rec.Percent, true, nil
}

// Sweep removes every expired record and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	removed := 0
	for session, rec := range s.records {
		if rec.Expired(now) {
			delete(s.records, session)
			removed++
		}
	}
	return removed
}

// Len returns the number of records held, including expired ones not yet removed.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := s.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			s.Sweep()
		}
	}
}
