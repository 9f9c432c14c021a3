package handlers

import (
	"net/http"

	"github.com/IlluminoStudio/scribemate-sub000/internal/middleware"
	"github.com/IlluminoStudio/scribemate-sub000/internal/services"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/apperr"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/utils"
	"github.com/gin-gonic/gin"
)

func renderError(c *gin.Context, err error) {
	appErr := apperr.AsAppError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message, "kind": appErr.Kind})
}

type CreateMessageInput struct {
	Title       string   `json:"title" binding:"required"`
	Body        string   `json:"body" binding:"required"`
	IsBroadcast bool     `json:"isBroadcast"`
	CarerIDs    []string `json:"carerIds"`
}

// CreateMessage POST /messages
// Coordinators compose a broadcast or private message to their carers.
func CreateMessage(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var input CreateMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := services.ComposeMessage(viewer, input.Title, input.Body, input.IsBroadcast, input.CarerIDs)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// ListAuthoredMessages GET /messages/authored?status=unread
// One row per (message, carer) pair authored by the coordinator.
func ListAuthoredMessages(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.RequireCoordinator(viewer); err != nil {
		renderError(c, err)
		return
	}

	views, err := services.ListAuthoredMessages(viewer.ID, c.Query("status"))
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": views})
}

// ListReceivedMessages GET /messages/received
// Carers list the messages addressed to them with derived status.
func ListReceivedMessages(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.RequireCarer(viewer); err != nil {
		renderError(c, err)
		return
	}

	views, err := services.ListReceivedMessages(viewer.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": views})
}

// AcknowledgeMessage POST /messages/:id/acknowledge
// One-shot: the first call wins, every later one gets 409.
func AcknowledgeMessage(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.RequireCarer(viewer); err != nil {
		renderError(c, err)
		return
	}

	messageID := c.Param("id")
	if !utils.IsUUID(messageID) {
		renderError(c, apperr.Validation("Invalid message id"))
		return
	}

	ack, err := services.AcknowledgeMessage(viewer.ID, messageID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"acknowledgment": ack})
}

// UnreadCount GET /messages/unread-count
// Cached briefly; acknowledge and compose invalidate it.
func UnreadCount(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := services.RequireCarer(viewer); err != nil {
		renderError(c, err)
		return
	}

	count, err := services.CountUnread(viewer.ID)
	if err != nil {
		renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
