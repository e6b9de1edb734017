// README: Message log store backed by PostgreSQL (JSONB for NLU metadata).
package chatlog

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"wander/internal/conversation"
	"wander/internal/nlu"
	"wander/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, msg *conversation.Message) error {
	var intentJSON, entitiesJSON []byte
	var err error
	if msg.Intent != nil {
		if intentJSON, err = json.Marshal(msg.Intent); err != nil {
			return err
		}
	}
	if len(msg.Entities) > 0 {
		if entitiesJSON, err = json.Marshal(msg.Entities); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO chat_messages (
			id, session_id, role, content, intent, entities, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		string(msg.ID),
		string(msg.SessionID),
		msg.Role,
		msg.Content,
		intentJSON,
		entitiesJSON,
		msg.CreatedAt,
	)
	return err
}

// ListBySession returns a session's messages in chronological order.
func (s *Store) ListBySession(ctx context.Context, sessionID types.ID) ([]conversation.Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, session_id, role, content, intent, entities, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at, id`, string(sessionID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []conversation.Message
	for rows.Next() {
		var msg conversation.Message
		var intentJSON, entitiesJSON []byte

		if err := rows.Scan(
			&msg.ID, &msg.SessionID, &msg.Role, &msg.Content,
			&intentJSON, &entitiesJSON, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(intentJSON) > 0 {
			var intent nlu.Intent
			if err := json.Unmarshal(intentJSON, &intent); err != nil {
				return nil, err
			}
			msg.Intent = &intent
		}
		if len(entitiesJSON) > 0 {
			if err := json.Unmarshal(entitiesJSON, &msg.Entities); err != nil {
				return nil, err
			}
		}

		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
