// README: Session handlers for create/context/history.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wander/internal/conversation"
	"wander/internal/modules/chatlog"
	"wander/internal/modules/session"
	"wander/internal/types"
)

type SessionHandler struct {
	sessions *session.Service
	chatlog  *chatlog.Service
}

func NewSessionHandler(sessions *session.Service, log *chatlog.Service) *SessionHandler {
	return &SessionHandler{sessions: sessions, chatlog: log}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, sess)
}

// Context handles GET /api/sessions/:id/context.
func (h *SessionHandler) Context(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	ctx, err := h.sessions.Context(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, ctx)
}

// Messages handles GET /api/sessions/:id/messages.
func (h *SessionHandler) Messages(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid session id")
		return
	}
	exists, err := h.sessions.Exists(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !exists {
		writeError(c, http.StatusNotFound, "session not found")
		return
	}
	messages, err := h.chatlog.History(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if messages == nil {
		messages = []conversation.Message{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"messages": messages})
}
