package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and by local setups that
// run without Redis. Records expire lazily on Get.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]memoryRecord
}

type memoryRecord struct {
	auth      Auth
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		records: make(map[string]memoryRecord),
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok || time.Now().After(record.expiresAt) {
		delete(s.records, id)
		return &Session{ID: id, store: s}, nil
	}

	auth := record.auth
	return &Session{ID: id, Auth: &auth, store: s}, nil
}

func (s *MemoryStore) Save(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var auth Auth
	if session.Auth != nil {
		auth = *session.Auth
	}
	s.records[session.ID] = memoryRecord{
		auth:      auth,
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, id)
	return nil
}
