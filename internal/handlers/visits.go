package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/middleware"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/IlluminoStudio/scribemate-sub000/internal/services"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/apperr"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClockInInput struct {
	Note string `json:"note"`
}

// ClockIn POST /visits/clock-in
func ClockIn(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.RequireCarer(viewer); err != nil {
		renderError(c, err)
		return
	}

	var input ClockInInput
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Reject a second open visit for the same carer. The partial
	// unique index below is the arbiter when two clock-ins race past
	// this check.
	var open int64
	database.DB.Model(&models.CareVisit{}).
		Where("carer_id = ? AND clock_out_at IS NULL", viewer.ID).
		Count(&open)
	if open > 0 {
		renderError(c, apperr.Conflict("Already clocked in"))
		return
	}

	visit := models.CareVisit{
		CarerID:   viewer.ID,
		ClockInAt: time.Now(),
		Note:      input.Note,
	}
	if err := database.DB.Create(&visit).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			renderError(c, apperr.Conflict("Already clocked in"))
			return
		}
		renderError(c, apperr.Persistence("Failed to clock in"))
		return
	}

	services.LogEvent(viewer.ID, models.EventVisitClockIn, visit.ID, "")

	c.JSON(http.StatusCreated, gin.H{"visit": visit})
}

// ClockOut POST /visits/:id/clock-out
func ClockOut(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.RequireCarer(viewer); err != nil {
		renderError(c, err)
		return
	}

	var visit models.CareVisit
	if err := database.DB.First(&visit, "id = ? AND carer_id = ?", c.Param("id"), viewer.ID).Error; err != nil {
		renderError(c, apperr.NotFound("Visit not found"))
		return
	}

	if visit.ClockOutAt != nil {
		renderError(c, apperr.Conflict("Already clocked out"))
		return
	}

	now := time.Now()
	visit.ClockOutAt = &now
	if err := database.DB.Save(&visit).Error; err != nil {
		renderError(c, apperr.Persistence("Failed to clock out"))
		return
	}

	services.LogEvent(viewer.ID, models.EventVisitClockOut, visit.ID, "")

	c.JSON(http.StatusOK, gin.H{"visit": visit})
}

// ListVisits GET /visits
// Carers see their own visits; coordinators see visits of their carers.
func ListVisits(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var visits []models.CareVisit

	switch viewer.Role {
	case models.RoleCarer:
		if err := database.DB.Where("carer_id = ?", viewer.ID).
			Order("clock_in_at desc").Limit(100).Find(&visits).Error; err != nil {
			renderError(c, apperr.Persistence("Failed to fetch visits"))
			return
		}
	case models.RoleCoordinator:
		if err := database.DB.
			Joins("JOIN users ON users.id = care_visits.carer_id").
			Where("users.coordinator_id = ?", viewer.ID).
			Order("clock_in_at desc").Limit(100).Find(&visits).Error; err != nil {
			renderError(c, apperr.Persistence("Failed to fetch visits"))
			return
		}
	default:
		renderError(c, apperr.Authorization(services.ReasonNotCarer))
		return
	}

	c.JSON(http.StatusOK, gin.H{"visits": visits})
}
