package routes

import (
	"notion-blocks/blockmirror/middleware"
	"notion-blocks/blockmirror/services"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes sets up WebSocket endpoints with authentication
func RegisterWebSocketRoutes(group *gin.RouterGroup, authService services.AuthServiceInterface, wsService services.WebSocketServiceInterface) {
	wsGroup := group.Group("/ws")
	wsGroup.Use(middleware.WebSocketAuthMiddleware(authService))
	{
		wsGroup.GET("", wsService.HandleConnection)
	}
}
