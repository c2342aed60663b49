package handlers

import (
	"FamCare/models"
	"FamCare/services"

	"github.com/gin-gonic/gin"
)

type RecordHandler struct {
	service *services.RecordService
}

func NewRecordHandler(service *services.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func (h *RecordHandler) CreateRecord(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	var record models.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.Create(c.Request.Context(), &record, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, record)
}

func (h *RecordHandler) GetRecordByID(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "record_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid record ID"})
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(404, gin.H{"error": "Medical record not found"})
		return
	}
	c.JSON(200, record)
}

func (h *RecordHandler) GetMemberRecords(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	memberID, err := parseUintParam(c, "member_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid member ID"})
		return
	}

	records, err := h.service.GetByMember(c.Request.Context(), memberID, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, records)
}

func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "record_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid record ID"})
		return
	}

	var record models.MedicalRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	record.ID = id

	if err := h.service.Update(c.Request.Context(), &record, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, record)
}

func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "record_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Medical record deleted"})
}
