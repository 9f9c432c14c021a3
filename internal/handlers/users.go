package handlers

import (
	"net/http"

	"github.com/IlluminoStudio/scribemate-sub000/internal/middleware"
	"github.com/IlluminoStudio/scribemate-sub000/internal/services"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/apperr"
	"github.com/gin-gonic/gin"
)

// ListCarers GET /users/carers
// Coordinators list the carers currently assigned to them.
func ListCarers(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.RequireCoordinator(viewer); err != nil {
		appErr := apperr.AsAppError(err)
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}

	carers, err := services.CarersFor(viewer.ID)
	if err != nil {
		appErr := apperr.AsAppError(err)
		c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
		return
	}

	c.JSON(http.StatusOK, gin.H{"carers": carers})
}
