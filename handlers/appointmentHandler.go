package handlers

import (
	"FamCare/models"
	"FamCare/services"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.Create(c.Request.Context(), &appointment); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "appointment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	appointment, err := h.service.GetByID(c.Request.Context(), id, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	if appointment == nil {
		c.JSON(404, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) GetFamilyAppointments(c *gin.Context) {
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

	appointments, err := h.service.GetByFamily(c.Request.Context(), familyID, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetMemberAppointments(c *gin.Context) {
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

	appointments, err := h.service.GetByMember(c.Request.Context(), memberID, actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointments)
}

// GetDoctorAppointments lists a doctor's appointments, optionally by status.
func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	actorID, actorRole, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	doctorID, err := strconv.ParseInt(c.Param("doctor_id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid doctor ID"})
		return
	}

	appointments, err := h.service.GetByDoctor(c.Request.Context(), doctorID, c.Query("status"), actorID, actorRole)
	if err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, err := parseUintParam(c, "appointment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	appointment.ID = id

	if err := h.service.Update(c.Request.Context(), &appointment); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, appointment)
}

// UpdateAppointmentStatus completes or cancels an appointment.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	id, err := parseUintParam(c, "appointment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var data struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), id, data.Status); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(200)
}

// UpdateDoctorNotes writes doctor notes on an appointment. Only the assigned
// doctor may write them.
func (h *AppointmentHandler) UpdateDoctorNotes(c *gin.Context) {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		c.JSON(401, gin.H{"error": "Unauthorized"})
		return
	}

	id, err := parseUintParam(c, "appointment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	var data struct {
		DoctorNotes string `json:"doctor_notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateDoctorNotes(c.Request.Context(), id, data.DoctorNotes, actorID); err != nil {
		c.JSON(statusFromError(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(200)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, err := parseUintParam(c, "appointment_id")
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(204, gin.H{"message": "Appointment deleted"})
}
