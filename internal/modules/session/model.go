// README: Session aggregate and error definitions.
package session

import (
	"errors"
	"time"

	"wander/internal/types"
)

var (
	ErrNotFound   = errors.New("session not found")
	ErrBadRequest = errors.New("bad request")
)

// Session is a chat session owned by the HTTP layer. The conversation core
// never holds session state; the folded context snapshot lives here.
type Session struct {
	ID        types.ID  `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
