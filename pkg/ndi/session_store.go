package ndi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("ndi: verification session not found")

// SessionStore persists verification sessions so the wizard can poll
// our status endpoint across requests and instances.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Load(ctx context.Context, threadID string) (Session, error)
}

const defaultSessionTTL = time.Hour

type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(threadID string) string {
	return "ndi:session:" + threadID
}

func (s *RedisSessionStore) Save(ctx context.Context, session Session) error {
	session.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ThreadID, err)
	}

	if err := s.rdb.Set(ctx, sessionKey(session.ThreadID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("write session %s: %w", session.ThreadID, err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, threadID string) (Session, error) {
	payload, err := s.rdb.Get(ctx, sessionKey(threadID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", threadID, err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return Session{}, fmt.Errorf("decode session %s: %w", threadID, err)
	}
	return session, nil
}

var _ SessionStore = (*RedisSessionStore)(nil)

// MemorySessionStore backs tests and Redis-less local runs.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]Session)}
}

func (s *MemorySessionStore) Save(_ context.Context, session Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.UpdatedAt = time.Now().UTC()
	s.sessions[session.ThreadID] = session
	return nil
}

func (s *MemorySessionStore) Load(_ context.Context, threadID string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[threadID]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return session, nil
}

var _ SessionStore = (*MemorySessionStore)(nil)
