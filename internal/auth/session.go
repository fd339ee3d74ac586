package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dscnitrourkela/project-nutella/pkg/cache"
	"github.com/dscnitrourkela/project-nutella/pkg/identity"
)

// Auth is the per-session authentication payload. It is nil until a token has
// been verified for the session.
type Auth struct {
	UID    string           `json:"uid"`
	MDBID  string           `json:"mdbid,omitempty"`
	JWT    string           `json:"jwt"`
	Exp    int64            `json:"exp"`
	Role   string           `json:"role"`
	Claims *identity.Claims `json:"claims,omitempty"`
}

// Session is a handle on one client's session record. Mutations take effect
// on Save; concurrent saves of the same id are last-write-wins.
type Session struct {
	ID   string
	Auth *Auth

	store Store
}

func (s *Session) Save(ctx context.Context) error {
	return s.store.Save(ctx, s)
}

func (s *Session) Destroy(ctx context.Context) error {
	return s.store.Destroy(ctx, s.ID)
}

// Store persists session records keyed by the cookie-carried session id.
type Store interface {
	// Get returns the session for id. A session with nil Auth is returned
	// when no record exists yet.
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Destroy(ctx context.Context, id string) error
}

// RedisStore keeps session records as JSON under session:<id> with the
// configured TTL.
type RedisStore struct {
	cache *cache.RedisClient
	ttl   time.Duration
}

func NewRedisStore(client *cache.RedisClient, ttl time.Duration) *RedisStore {
	return &RedisStore{cache: client, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return "session:" + id
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.cache.Get(ctx, s.key(id))
	if errors.Is(err, redis.Nil) {
		return &Session{ID: id, store: s}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	auth := &Auth{}
	if err := json.Unmarshal([]byte(data), auth); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	return &Session{ID: id, Auth: auth, store: s}, nil
}

func (s *RedisStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session.Auth)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.cache.Set(ctx, s.key(session.ID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, s.key(id)); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
