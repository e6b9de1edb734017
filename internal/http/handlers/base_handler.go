// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wander/internal/modules/chatlog"
	"wander/internal/modules/session"
	"wander/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID ensures IDs are hex and at most 32 chars (matches current ID generator).
func isValidID(v string) bool {
	if v == "" || len(v) > 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrBadRequest, session.ErrBadRequest, chatlog.ErrBadRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case service.ErrSessionNotFound, session.ErrNotFound:
		writeError(c, http.StatusNotFound, "session not found")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
