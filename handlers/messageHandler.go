package handlers

import (
	"FamCare/models"
	"FamCare/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// StartConversation opens (or returns) a doctor-family thread.
func (h *MessageHandler) StartConversation(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	var data struct {
		DoctorID int64 `json:"doctor_id"`
		FamilyID uint  `json:"family_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	// A doctor opens threads as themselves.
	if actorRole == models.RoleDoctor {
		data.DoctorID = actorID
	}
	if data.DoctorID == 0 {
		c.JSON(400, gin.H{"error": "doctor_id is required"})
		return
	}

	conversation, err := h.service.StartConversation(c.Request.Context(), data.DoctorID, data.FamilyID)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, conversation)
}

// GetConversations lists the authenticated user's conversations.
func (h *MessageHandler) GetConversations(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	conversations, err := h.service.GetConversationsForUser(c.Request.Context(), actorID, actorRole)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, conversations)
}

// SendMessage appends a message to a conversation.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	conversationID, err := parseUintParam(c, "conversation_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid conversation ID"})
		return
	}

	var message models.Message
	if err := c.ShouldBindJSON(&message); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	message.ConversationID = conversationID

	if err := h.service.SendMessage(c.Request.Context(), &message, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, message)
}

// GetMessages lists a conversation's messages, marking the other side's
// messages read for the fetching participant.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	conversationID, err := parseUintParam(c, "conversation_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid conversation ID"})
		return
	}

	messages, err := h.service.GetMessages(c.Request.Context(), conversationID, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, messages)
}

// SearchMessages performs keyword search within a conversation.
func (h *MessageHandler) SearchMessages(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	conversationID, err := parseUintParam(c, "conversation_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid conversation ID"})
		return
	}

	keyword := c.Query("q")
	if keyword == "" {
		c.JSON(400, gin.H{"error": "Missing search keyword"})
		return
	}

	messages, err := h.service.SearchMessages(c.Request.Context(), conversationID, keyword, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, messages)
}
