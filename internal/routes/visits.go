package routes

import (
	"github.com/IlluminoStudio/scribemate-sub000/internal/handlers"
	"github.com/IlluminoStudio/scribemate-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

func RegisterVisitRoutes(r gin.IRouter) {
	visits := r.Group("/visits")
	visits.Use(middleware.AuthMiddleware())
	{
		visits.POST("/clock-in", handlers.ClockIn)
		visits.POST("/:id/clock-out", handlers.ClockOut)
		visits.GET("", handlers.ListVisits)
	}
}
