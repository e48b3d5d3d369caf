package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	sess      Session
	expiresAt time.Time
}

// MemoryStore is an in-memory Store with per-entry expiry. Suitable for a
// single instance; use RedisStore when the gateway runs replicated.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryStore{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	s.mu.Lock()
	s.entries[sess.ID] = memoryEntry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (Session, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false, nil
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		if cur, ok2 := s.entries[id]; ok2 && time.Now().After(cur.expiresAt) {
			delete(s.entries, id)
		}
		s.mu.Unlock()
		return Session{}, false, nil
	}
	return e.sess, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
