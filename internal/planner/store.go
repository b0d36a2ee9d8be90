package planner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown or expired plans.
var ErrNotFound = errors.New("plan not found")

type storeEntry struct {
	plan      *Plan
	expiresAt time.Time
}

// Store keeps plans in memory. Each access extends a plan's lifetime by ttl;
// plans left untouched longer than that are dropped by Run.
type Store struct {
	mu     sync.Mutex
	plans  map[uuid.UUID]*storeEntry
	ttl    time.Duration
	logger *zap.Logger
}

// NewStore creates a store. ttl <= 0 keeps plans forever.
func NewStore(ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		plans:  make(map[uuid.UUID]*storeEntry),
		ttl:    ttl,
		logger: logger,
	}
}

// Put adds a plan.
func (s *Store) Put(p *Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[p.ID] = &storeEntry{plan: p, expiresAt: s.expiry(time.Now())}
}

// Do runs fn with exclusive access to the plan.
func (s *Store) Do(id uuid.UUID, fn func(*Plan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.plans[id]
	if !ok || s.expired(e, now) {
		return ErrNotFound
	}
	e.expiresAt = s.expiry(now)
	return fn(e.plan)
}

// Delete removes a plan.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return ErrNotFound
	}
	delete(s.plans, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.plans)
}

// Run removes expired plans every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sweep(now); n > 0 {
				s.logger.Info("expired plans removed", zap.Int("count", n))
			}
		}
	}
}

func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.plans {
		if s.expired(e, now) {
			delete(s.plans, id)
			n++
		}
	}
	return n
}

func (s *Store) expiry(now time.Time) time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(s.ttl)
}

func (s *Store) expired(e *storeEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}
