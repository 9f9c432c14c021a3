package routes

import (
	"github.com/IlluminoStudio/scribemate-sub000/internal/handlers"
	"github.com/IlluminoStudio/scribemate-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(r gin.IRouter) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", handlers.Me)
		users.GET("/carers", handlers.ListCarers)
	}
}
