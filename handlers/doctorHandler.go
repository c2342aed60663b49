package handlers

import (
	"FamCare/models"
	"FamCare/services"
	"time"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service     *services.DoctorService
	userService services.UserService
}

func NewDoctorHandler(service *services.DoctorService, userService services.UserService) *DoctorHandler {
	return &DoctorHandler{service: service, userService: userService}
}

// ListDoctors returns all doctor accounts.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.userService.GetDoctors(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, doctors)
}

// CreateRequest files the authenticated doctor's request to join a family.
func (h *DoctorHandler) CreateRequest(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	var request models.DoctorRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	request.DoctorID = actorID

	if err := h.service.CreateRequest(c.Request.Context(), &request); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, request)
}

// RespondToRequest accepts or rejects a pending doctor request.
func (h *DoctorHandler) RespondToRequest(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "request_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid request ID"})
		return
	}

	var data struct {
		Status          string     `json:"status" binding:"required"`
		ResponseMessage string     `json:"response_message"`
		ResponseDate    *time.Time `json:"response_date"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	responseDate := time.Now()
	if data.ResponseDate != nil {
		responseDate = *data.ResponseDate
	}

	request, err := h.service.RespondToRequest(c.Request.Context(), id, data.Status, data.ResponseMessage, responseDate, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, request)
}

// GetFamilyRequests lists a family's doctor requests, optionally by status.
func (h *DoctorHandler) GetFamilyRequests(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	familyID, err := parseUintParam(c, "family_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid family ID"})
		return
	}

	requests, err := h.service.GetRequestsByFamily(c.Request.Context(), familyID, c.Query("status"), actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, requests)
}

// GetMyRequests lists the authenticated doctor's own requests.
func (h *DoctorHandler) GetMyRequests(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	requests, err := h.service.GetRequestsByDoctor(c.Request.Context(), actorID)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, requests)
}

// GetFamilyAssignments lists a family's doctor assignments.
func (h *DoctorHandler) GetFamilyAssignments(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	familyID, err := parseUintParam(c, "family_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid family ID"})
		return
	}

	assignments, err := h.service.GetAssignmentsByFamily(c.Request.Context(), familyID, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, assignments)
}

// GetMyAssignments lists the authenticated doctor's assignments.
func (h *DoctorHandler) GetMyAssignments(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	assignments, err := h.service.GetAssignmentsByDoctor(c.Request.Context(), actorID, c.Query("status"))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, assignments)
}

// DeactivateAssignment ends a care relationship.
func (h *DoctorHandler) DeactivateAssignment(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "assignment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid assignment ID"})
		return
	}

	if err := h.service.DeactivateAssignment(c.Request.Context(), id, actorID, actorRole); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(200)
}
