// README: Chat handler; runs the analysis pipeline for one user message.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wander/internal/service"
	"wander/internal/types"
)

// analyzeTimeout bounds one full pipeline run including the optional LLM
// fallback round trip.
const analyzeTimeout = 15 * time.Second

type ChatHandler struct {
	analyzer *service.ChatAnalyzer
}

func NewChatHandler(analyzer *service.ChatAnalyzer) *ChatHandler {
	return &ChatHandler{analyzer: analyzer}
}

type analyzeReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Analyze handles POST /api/chat/analyze.
func (h *ChatHandler) Analyze(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.Message = strings.TrimSpace(req.Message)
	if req.SessionID == "" || req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing session_id or message")
		return
	}
	if !isValidID(req.SessionID) {
		writeError(c, http.StatusBadRequest, "invalid session_id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), analyzeTimeout)
	defer cancel()

	result, err := h.analyzer.Analyze(ctx, types.ID(req.SessionID), req.Message)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, result)
}
