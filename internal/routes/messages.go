package routes

import (
	"github.com/IlluminoStudio/scribemate-sub000/internal/handlers"
	"github.com/IlluminoStudio/scribemate-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterMessageRoutes(r gin.IRouter) {
	messages := r.Group("/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", handlers.CreateMessage)
		messages.GET("/authored", handlers.ListAuthoredMessages)
		messages.GET("/received", handlers.ListReceivedMessages)
		messages.GET("/unread-count", handlers.UnreadCount)
		messages.POST("/:id/acknowledge", handlers.AcknowledgeMessage)
	}
}
