// README: Chat log service; records turns and replays history for the fold.
package chatlog

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

// Record appends one turn to the session log, assigning ID and timestamp.
func (s *Service) Record(ctx context.Context, msg conversation.Message) (conversation.Message, error) {
	if msg.SessionID == "" || msg.Content == "" {
		return conversation.Message{}, ErrBadRequest
	}
	if msg.Role == "" {
		msg.Role = RoleUser
	}
	msg.ID = types.NewID()
	msg.CreatedAt = time.Now().UTC()

	if err := s.store.Append(ctx, &msg); err != nil {
		return conversation.Message{}, err
	}
	return msg, nil
}

// History returns all messages of a session in order.
func (s *Service) History(ctx context.Context, sessionID types.ID) ([]conversation.Message, error) {
	if sessionID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListBySession(ctx, sessionID)
}
