// README: Session store backed by Redis (JSON snapshots with TTL).
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wander/internal/conversation"
	"wander/internal/types"
)

const (
	sessionKeyPrefix = "session:%s:meta"
	contextKeyPrefix = "session:%s:context"
)

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

func (s *Store) CreateSession(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err()
}

func (s *Store) GetSession(ctx context.Context, id types.ID) (*Session, error) {
	val, err := s.redis.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SaveContext stores the folded context snapshot and refreshes the TTL of
// both session keys so an active conversation never expires mid-flight.
func (s *Store) SaveContext(ctx context.Context, id types.ID, c conversation.Context) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	pipe := s.redis.Pipeline()
	pipe.Set(ctx, contextKey(id), data, s.ttl)
	pipe.Expire(ctx, sessionKey(id), s.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetContext returns the stored snapshot, and whether one exists.
func (s *Store) GetContext(ctx context.Context, id types.ID) (conversation.Context, bool, error) {
	val, err := s.redis.Get(ctx, contextKey(id)).Result()
	if err == redis.Nil {
		return conversation.NewContext(), false, nil
	}
	if err != nil {
		return conversation.Context{}, false, err
	}
	var c conversation.Context
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return conversation.Context{}, false, err
	}
	return c, true, nil
}

func sessionKey(id types.ID) string {
	return fmt.Sprintf(sessionKeyPrefix, string(id))
}

func contextKey(id types.ID) string {
	return fmt.Sprintf(contextKeyPrefix, string(id))
}
