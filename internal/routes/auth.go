package routes

import (
	"github.com/IlluminoStudio/scribemate-sub000/internal/handlers"
	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/login", handlers.Login)
}
