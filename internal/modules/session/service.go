// README: Session service; creates sessions and serves context snapshots.
package session

import (
	"context"
	"time"

	"wander/internal/conversation"
	"wander/internal/types"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Create starts a new chat session and returns its ID.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	sess := &Session{
		ID:        types.NewID(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Context returns the folded context snapshot for a session. A session that
// exists but has no snapshot yet gets the greeting-state default; an unknown
// session is ErrNotFound.
func (s *Service) Context(ctx context.Context, id types.ID) (conversation.Context, error) {
	if id == "" {
		return conversation.Context{}, ErrBadRequest
	}
	if _, err := s.store.GetSession(ctx, id); err != nil {
		return conversation.Context{}, err
	}
	c, ok, err := s.store.GetContext(ctx, id)
	if err != nil {
		return conversation.Context{}, err
	}
	if !ok {
		return conversation.NewContext(), nil
	}
	return c, nil
}

// SaveContext persists a freshly folded snapshot.
func (s *Service) SaveContext(ctx context.Context, id types.ID, c conversation.Context) error {
	return s.store.SaveContext(ctx, id, c)
}

// Exists reports whether the session is known and unexpired.
func (s *Service) Exists(ctx context.Context, id types.ID) (bool, error) {
	_, err := s.store.GetSession(ctx, id)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
