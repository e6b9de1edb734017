// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wander/internal/http/handlers"
	"wander/internal/http/middleware"
	"wander/internal/modules/chatlog"
	"wander/internal/modules/session"
	"wander/internal/service"
)

func NewRouter(
	analyzer *service.ChatAnalyzer,
	sessionService *session.Service,
	chatlogService *chatlog.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	chatHandler := handlers.NewChatHandler(analyzer)
	r.POST("/api/chat/analyze", chatHandler.Analyze)

	sessionHandler := handlers.NewSessionHandler(sessionService, chatlogService)
	r.POST("/api/sessions", sessionHandler.Create)
	r.GET("/api/sessions/:id/context", sessionHandler.Context)
	r.GET("/api/sessions/:id/messages", sessionHandler.Messages)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
