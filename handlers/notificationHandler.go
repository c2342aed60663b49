package handlers

import (
	"FamCare/middlewares"
	"FamCare/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetNotifications lists the authenticated user's notifications. Pass
// ?unread=true to restrict to unread ones.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	unreadOnly := c.Query("unread") == "true"
	notifications, err := h.service.GetForUser(c.Request.Context(), actorID, unreadOnly)
	if err != nil {
		middlewares.HttpError(c, "Failed to retrieve notifications", 500, err)
		return
	}
	middlewares.RespondJSON(c, notifications, 200)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "notification_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid notification ID"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, actorID); err != nil {
		middlewares.HttpError(c, "Failed to mark notification read", 500, err)
		return
	}
	c.Status(200)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), actorID); err != nil {
		middlewares.HttpError(c, "Failed to mark notifications read", 500, err)
		return
	}
	c.Status(200)
}
