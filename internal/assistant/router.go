package assistant

import (
	"audease/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAssistantRoutes(rg *gin.RouterGroup, controller *Controller) {
	assistant := rg.Group("/assistant")
	assistant.Use(middleware.JWTAuth())
	{
		assistant.GET("/suggestions", controller.GetSuggestions)   // GET /api/v1/assistant/suggestions
		assistant.POST("/optimal-time", controller.FindOptimalTime) // POST /api/v1/assistant/optimal-time
		assistant.POST("/chat", controller.Chat)                    // POST /api/v1/assistant/chat
		assistant.DELETE("/chat", controller.ResetChat)             // DELETE /api/v1/assistant/chat
	}
}
