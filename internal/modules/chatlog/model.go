// README: Chat message log model and errors.
package chatlog

import "errors"

var (
	ErrNotFound   = errors.New("message not found")
	ErrBadRequest = errors.New("bad request")
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Schema (migrations are applied out of band):
//
//	CREATE TABLE chat_messages (
//	    id         TEXT PRIMARY KEY,
//	    session_id TEXT NOT NULL,
//	    role       TEXT NOT NULL,
//	    content    TEXT NOT NULL,
//	    intent     JSONB,
//	    entities   JSONB,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX chat_messages_session_idx ON chat_messages (session_id, created_at);
